package flow

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// EventDateLayout is the accepted date-time input format (day.month.year
// hour:minute).
const EventDateLayout = "02.01.2006 15:04"

var (
	errEmpty   = errors.New("value must not be empty")
	errBadDate = errors.New("date must match DD.MM.YYYY HH:MM")
)

// Text accepts any non-empty input after trimming.
func Text(input string) (any, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, errEmpty
	}
	return trimmed, nil
}

// DateTime accepts input in EventDateLayout and yields a time.Time in the
// local timezone.
func DateTime(input string) (any, error) {
	t, err := time.ParseInLocation(EventDateLayout, strings.TrimSpace(input), time.Local)
	if err != nil {
		return nil, errBadDate
	}
	return t, nil
}

// MentorNone is the selection payload meaning "no mentor assigned".
const MentorNone = "none"

// MentorChoice accepts a mentor selection payload: MentorNone yields a nil
// mentor reference, any other value must be a mentor id.
func MentorChoice(input string) (any, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == MentorNone {
		return (*int64)(nil), nil
	}
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, errors.New("select a mentor from the list")
	}
	return &id, nil
}
