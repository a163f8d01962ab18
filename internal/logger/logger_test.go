package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"log/slog"
)

func TestEventCarriesContextMeta(t *testing.T) {
	var buf bytes.Buffer
	InitTestLogger(&buf)
	defer func() { L = nil }()

	ctx := WithRID(context.Background(), BuildRID(17, -100, 555))
	ctx = WithUpdateMeta(ctx, 17, 555, -100)

	Info(ctx, "svc", "thing.done", slog.String("extra", "v"))

	line := buf.String()
	for _, want := range []string{
		"component=svc",
		"event=thing.done",
		"rid=17:-100:555",
		"update_id=17",
		"user_id=555",
		"chat_id=-100",
		"extra=v",
	} {
		if !strings.Contains(line, want) {
			t.Fatalf("log line missing %q: %s", want, line)
		}
	}
}

func TestEventWithoutMetaOmitsAttrs(t *testing.T) {
	var buf bytes.Buffer
	InitTestLogger(&buf)
	defer func() { L = nil }()

	Warn(context.Background(), "svc", "thing.warned")

	line := buf.String()
	for _, absent := range []string{"rid=", "update_id=", "user_id=", "chat_id="} {
		if strings.Contains(line, absent) {
			t.Fatalf("log line carries unexpected %q: %s", absent, line)
		}
	}
}
