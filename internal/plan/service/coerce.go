package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var rxKeepNum = regexp.MustCompile(`[^0-9.\-]`)

// CoerceNumber parses free-form numeric text: "£12,345.67", " 980 ",
// "$1 000", "(45)". Currency symbols, thousands separators and stray
// characters are stripped; empty or unparseable input yields 0.
func CoerceNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	// special spaces first: NBSP, thin space, narrow NBSP
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', ' ', ' ':
			return -1
		}
		return r
	}, s)
	neg := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		neg = true
		s = s[1 : len(s)-1]
	}
	s = rxKeepNum.ReplaceAllString(s, "")
	if s == "" || s == "-" || s == "." {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	if neg {
		v = -v
	}
	return v
}

var dayFirstLayouts = []string{
	"2/1/2006",
	"2/1/06",
	"2-1-2006",
	"2-1-06",
	"2.1.2006",
	"2006-01-02",
	"2 Jan 2006",
	"2 January 2006",
	"2/1/2006 15:04",
	"2006-01-02 15:04:05",
}

var monthFirstLayouts = []string{
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"2006-01-02",
	"Jan 2, 2006",
	"1/2/2006 15:04",
}

// CoerceDate parses free-form date text. dayFirst selects the UK
// day-before-month convention for ambiguous numeric dates. The second
// return is false when nothing parses; the caller treats that as "unknown".
func CoerceDate(s string, dayFirst bool) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	layouts := monthFirstLayouts
	if dayFirst {
		layouts = dayFirstLayouts
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// 1-2 digit day, 1-2 digit month, 2 or 4 digit year, "/" or "-" separated
var rxEmbeddedDate = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4}|\d{2})`)

// ExtractEmbeddedDate scans free text for the first D/M/Y-looking substring
// and parses it day-first. Returns false when there is no match or the match
// is not a valid calendar date.
func ExtractEmbeddedDate(s string) (time.Time, bool) {
	m := rxEmbeddedDate.FindStringSubmatch(s)
	if m == nil {
		return time.Time{}, false
	}
	layout := "2/1/2006"
	if len(m[3]) == 2 {
		layout = "2/1/06"
	}
	t, err := time.Parse(layout, m[1]+"/"+m[2]+"/"+m[3])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DisplayDate renders a date UK-style.
func DisplayDate(t time.Time) string { return t.Format("02/01/2006") }
