package common

import (
	"regexp"
	"time"
)

const (
	longDateLayout  = "January 2, 2006"
	shortDateLayout = "01/02/2006"
)

var (
	// "For the period of July 1, 2024 to September 30, 2024"
	periodOfPattern = regexp.MustCompile(`(?i)For the period of (\w+ \d{1,2}, \d{4}) to (\w+ \d{1,2}, \d{4})`)
	// "July 1, 2025 to September 30, 2025" / "July 01, 2025 - September 30, 2025"
	periodRangePattern = regexp.MustCompile(`(?i)(\w+ \d{1,2}, \d{4})\s*(?:to|-)\s*(\w+ \d{1,2}, \d{4})`)
	// "Beginning Value on 07/01/2024" / "Ending Value on 09/30/2024"
	beginningOnPattern = regexp.MustCompile(`(?i)Beginning\s+Value\s+on\s+(\d{2}/\d{2}/\d{4})`)
	endingOnPattern    = regexp.MustCompile(`(?i)Ending\s+Value\s+on\s+(\d{2}/\d{2}/\d{4})`)
)

// ParsePeriod extracts the statement period from the full document text,
// trying the explicit period sentence first, then a bare date range, then the
// "Value on MM/DD/YYYY" forms. Either endpoint may come back nil.
func ParsePeriod(text string) (start, end *time.Time) {
	for _, re := range []*regexp.Regexp{periodOfPattern, periodRangePattern} {
		if m := re.FindStringSubmatch(text); m != nil {
			start = parseDate(longDateLayout, m[1])
			end = parseDate(longDateLayout, m[2])
			if start != nil && end != nil {
				return start, end
			}
		}
	}
	if m := beginningOnPattern.FindStringSubmatch(text); m != nil {
		start = parseDate(shortDateLayout, m[1])
	}
	if m := endingOnPattern.FindStringSubmatch(text); m != nil {
		end = parseDate(shortDateLayout, m[1])
	}
	return start, end
}

func parseDate(layout, value string) *time.Time {
	t, err := time.Parse(layout, value)
	if err != nil {
		return nil
	}
	return &t
}
