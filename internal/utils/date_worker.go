package utils

import "time"

// Records are stored in ISO form; replies show the short DD.MM.YY
// form users see in the chat.
const (
	ISODateLayout   = "2006-01-02"
	ShortDateLayout = "02.01.06"
)

func ParseISODate(dateStr string) (time.Time, error) {
	return time.Parse(ISODateLayout, dateStr)
}

func FormatISODate(d time.Time) string {
	return d.Format(ISODateLayout)
}

func FormatShortDate(d time.Time) string {
	return d.Format(ShortDateLayout)
}
