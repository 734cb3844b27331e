// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package database

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// decodeIDList decodes a serialized list of work IDs.
//
// Accepted shapes are Python list or tuple literals ("[1, 2]", "('1', '2')"),
// DuckDB list renderings ("[1, 2]") and whitespace separated arrays
// ("[1 2 3]"). Quoted and integral float elements are accepted; None, nan
// and NULL elements are skipped. Anything else is errMalformedList.
func decodeIDList(raw string) ([]int64, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 2 {
		return nil, errMalformedList
	}
	open, closing := s[0], s[len(s)-1]
	if !(open == '[' && closing == ']') && !(open == '(' && closing == ')') {
		return nil, errMalformedList
	}

	inner := strings.TrimSpace(s[1 : len(s)-1])
	if inner == "" {
		return []int64{}, nil
	}

	fields := strings.FieldsFunc(inner, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	ids := make([]int64, 0, len(fields))
	for _, field := range fields {
		token, ok := unquote(field)
		if !ok {
			return nil, errMalformedList
		}
		switch strings.ToLower(token) {
		case "none", "nan", "null":
			continue
		}
		id, err := parseIntegral(token)
		if err != nil {
			return nil, errMalformedList
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// unquote strips one pair of matching single or double quotes.
func unquote(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	first := token[0]
	if first != '\'' && first != '"' {
		return token, true
	}
	if len(token) < 2 || token[len(token)-1] != first {
		return "", false
	}
	return strings.TrimSpace(token[1 : len(token)-1]), true
}

// parseIntegral parses an int64, also accepting floats with no fraction ("12.0").
func parseIntegral(token string) (int64, error) {
	if id, err := strconv.ParseInt(token, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, strconv.ErrSyntax
	}
	return int64(f), nil
}

// reviewDateLayouts are tried in order when parsing review dates.
var reviewDateLayouts = []string{
	time.RubyDate, // Goodreads export: "Fri Sep 08 10:44:24 -0700 2017"
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
	"Jan 02, 2006",
}

// parseReviewDate parses a stored review date. Unparseable input yields nil.
func parseReviewDate(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	for _, layout := range reviewDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}

// durationUnits maps interval unit words to their length.
var durationUnits = map[string]time.Duration{
	"year":   365 * 24 * time.Hour,
	"years":  365 * 24 * time.Hour,
	"mon":    30 * 24 * time.Hour,
	"mons":   30 * 24 * time.Hour,
	"month":  30 * 24 * time.Hour,
	"months": 30 * 24 * time.Hour,
	"day":    24 * time.Hour,
	"days":   24 * time.Hour,
}

// parseDuration parses a stored reading time.
//
// Supported forms: interval text ("3 days 04:00:00", "1 day", "04:30:00",
// "2 mons 1 day"), Go durations ("72h"), and bare numbers, which are read
// as nanoseconds.
func parseDuration(raw string) (time.Duration, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	if n, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return time.Duration(n), true
	}

	if d, err := time.ParseDuration(s); err == nil {
		return d, true
	}

	fields := strings.Fields(s)
	var total time.Duration
	for i := 0; i < len(fields); i++ {
		field := fields[i]
		if strings.Contains(field, ":") {
			d, ok := parseClock(field)
			if !ok {
				return 0, false
			}
			total += d
			continue
		}
		n, err := strconv.ParseFloat(field, 64)
		if err != nil || i+1 >= len(fields) {
			return 0, false
		}
		unit, ok := durationUnits[strings.TrimSuffix(strings.ToLower(fields[i+1]), ",")]
		if !ok {
			return 0, false
		}
		total += time.Duration(n * float64(unit))
		i++
	}
	return total, true
}

// parseClock parses "[-]HH:MM[:SS[.frac]]".
func parseClock(s string) (time.Duration, bool) {
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	var seconds float64
	if len(parts) == 3 {
		seconds, err = strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return 0, false
		}
	}
	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds*float64(time.Second))
	if negative {
		d = -d
	}
	return d, true
}

// splitGenreTags splits the delimited genre field into trimmed, non-empty tags.
func splitGenreTags(genres string) []string {
	if genres == "" {
		return nil
	}
	parts := strings.Split(genres, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
