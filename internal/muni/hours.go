package muni

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cicconee/ztl-maps/internal/schedule"
)

// hoursPrefixes are labels municipalities print in front of the
// schedule text.
var hoursPrefixes = []string{"Operating Hours:", "Orari:", "Hours:"}

// timeRangePattern matches ranges like "7:30-19:30", tolerating dots
// for colons, spaces around the dash, and a trailing "24 hours" in
// place of an end time.
var timeRangePattern = regexp.MustCompile(`(\d{1,2}[:.]\d{2})\s*[-–]\s*(\d{1,2}[:.]\d{2}|24\s*hours)`)

// ParseHours converts an operating hours sentence into raw windows.
// Segments are separated by commas or semicolons, each holding an
// optional day part followed by a time range:
//
//	Monday-Friday 7:30-19:30
//	Saturday and Sunday 10:00-14:00
//	Every day 21:00-07:30
//	24 hours
//
// A segment without a day part covers every day, and "24 hours" in
// place of an end time runs the window to 23:59. Day tokens pass
// through untouched; schedule.Normalize decides whether they mean
// anything.
func ParseHours(text string) ([]schedule.RawWindow, error) {
	text = stripHoursPrefix(text)
	if text == "" {
		return nil, errors.New("empty hours text")
	}

	var windows []schedule.RawWindow
	for _, segment := range splitSegments(text) {
		w, err := parseHoursSegment(segment)
		if err != nil {
			return nil, err
		}

		windows = append(windows, w)
	}

	if len(windows) == 0 {
		return nil, fmt.Errorf("no time ranges in %q", text)
	}

	return windows, nil
}

func stripHoursPrefix(text string) string {
	text = strings.TrimSpace(text)
	for _, prefix := range hoursPrefixes {
		if strings.HasPrefix(text, prefix) {
			return strings.TrimSpace(text[len(prefix):])
		}
	}

	return text
}

func splitSegments(text string) []string {
	var segments []string
	for _, s := range strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	}) {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}

	return segments
}

func parseHoursSegment(segment string) (schedule.RawWindow, error) {
	lower := strings.ToLower(segment)
	if lower == "24 hours" || lower == "24h" {
		return schedule.RawWindow{Days: []string{"daily"}, Start: "00:00", End: "23:59"}, nil
	}

	loc := timeRangePattern.FindStringSubmatchIndex(segment)
	if loc == nil {
		return schedule.RawWindow{}, fmt.Errorf("no time range in segment %q", segment)
	}

	start := segment[loc[2]:loc[3]]
	end := segment[loc[4]:loc[5]]
	if strings.HasPrefix(strings.ToLower(end), "24") {
		end = "23:59"
	}

	days := splitDayTokens(segment[:loc[0]])
	if len(days) == 0 {
		days = []string{"daily"}
	}

	return schedule.RawWindow{Days: days, Start: start, End: end}, nil
}

// splitDayTokens breaks the day part of a segment into tokens,
// treating "and" as a separator and dropping a trailing colon.
func splitDayTokens(s string) []string {
	s = strings.TrimSuffix(strings.TrimSpace(s), ":")
	s = strings.ReplaceAll(s, " and ", ",")

	var tokens []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, t)
		}
	}

	return tokens
}
