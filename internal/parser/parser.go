// Package parser extracts step tags of the form "#шаги 1234 01.10"
// from anywhere inside free-form message text.
package parser

import (
	"errors"
	"regexp"
	"strconv"
	"time"
)

var (
	// ErrNoTag means the text carries no step tag at all; callers
	// stay silent in that case.
	ErrNoTag = errors.New("no step tag in text")
	// ErrInvalidDate means a tag was found but its DD.MM pair is not
	// a real calendar date; callers should tell the user.
	ErrInvalidDate = errors.New("step tag has invalid date")
)

// The tag is located by search, not full-string match, so it may sit
// inside a longer message or a photo caption.
var stepTagRe = regexp.MustCompile(`(?i)#шаги\s+(\d+)\s+(\d{2})\.(\d{2})`)

// Tag is a parsed step report. Date carries the year current at
// processing time, since the tag itself has none.
type Tag struct {
	Steps int
	Date  time.Time
}

// Parse searches text for a step tag and resolves its date against
// the year of now.
func Parse(text string, now time.Time) (Tag, error) {
	m := stepTagRe.FindStringSubmatch(text)
	if m == nil {
		return Tag{}, ErrNoTag
	}

	steps, err := strconv.Atoi(m[1])
	if err != nil {
		// Digit run too long to represent; nothing usable here.
		return Tag{}, ErrNoTag
	}
	day, _ := strconv.Atoi(m[2])
	month, _ := strconv.Atoi(m[3])

	date := time.Date(now.Year(), time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range values (30.02 becomes 01.03),
	// so a changed day or month means the pair was not a real date.
	if date.Day() != day || date.Month() != time.Month(month) {
		return Tag{}, ErrInvalidDate
	}

	return Tag{Steps: steps, Date: date}, nil
}
