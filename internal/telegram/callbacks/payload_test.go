package callbacks

import (
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestParseCallbackData(t *testing.T) {
	cases := []struct {
		data    string
		unique  string
		payload string
	}{
		{`\fadm_edit_pick|42`, "adm_edit_pick", "42"},
		{`\fmenu_main`, "menu_main", ""},
		{`\fadm_assign_set|12:0`, "adm_assign_set", "12:0"},
		{"", "", ""},
	}
	for _, tc := range cases {
		unique, payload := ParseCallbackData(&tele.Callback{Data: tc.data})
		if unique != tc.unique || payload != tc.payload {
			t.Fatalf("ParseCallbackData(%q) = %q, %q; want %q, %q",
				tc.data, unique, payload, tc.unique, tc.payload)
		}
	}
}

func TestParseCallbackDataNil(t *testing.T) {
	unique, payload := ParseCallbackData(nil)
	if unique != "" || payload != "" {
		t.Fatalf("nil callback parsed to %q, %q", unique, payload)
	}
}

// cbContext carries just enough of tele.Context for the payload helpers.
type cbContext struct {
	tele.Context
	cb *tele.Callback
}

func (c cbContext) Callback() *tele.Callback { return c.cb }

func TestKeyPrefersUnique(t *testing.T) {
	c := cbContext{cb: &tele.Callback{Unique: "menu_main", Data: `\fother|1`}}
	if got := Key(c); got != "menu_main" {
		t.Fatalf("Key = %q, want menu_main", got)
	}
	c = cbContext{cb: &tele.Callback{Data: `\fother|1`}}
	if got := Key(c); got != "other" {
		t.Fatalf("Key = %q, want other", got)
	}
}

func TestPayloadTwoInt64(t *testing.T) {
	cases := []struct {
		payload string
		a, b    int64
		wantErr bool
	}{
		{"12:34", 12, 34, false},
		{"12:0", 12, 0, false},
		{"12", 0, 0, true},
		{"12:none", 0, 0, true},
		{"x:1", 0, 0, true},
	}
	for _, tc := range cases {
		c := cbContext{cb: &tele.Callback{Data: `\fadm_assign_set|` + tc.payload}}
		a, b, err := PayloadTwoInt64(c, ":")
		if tc.wantErr {
			if err == nil {
				t.Fatalf("PayloadTwoInt64(%q): expected error", tc.payload)
			}
			continue
		}
		if err != nil {
			t.Fatalf("PayloadTwoInt64(%q): %v", tc.payload, err)
		}
		if a != tc.a || b != tc.b {
			t.Fatalf("PayloadTwoInt64(%q) = %d, %d; want %d, %d",
				tc.payload, a, b, tc.a, tc.b)
		}
	}
}
