// Bookend - Book Review Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookend

package models

// Era is a named publication-year bucket.
type Era string

// Known eras, oldest first.
const (
	EraPre1800s     Era = "pre-1800s"
	Era1800s        Era = "1800s"
	EraModern       Era = "modern"
	EraContemporary Era = "contemporary"
	Era2000s        Era = "2000s"
)

// Eras lists every era in chronological order.
var Eras = []Era{EraPre1800s, Era1800s, EraModern, EraContemporary, Era2000s}

// Valid reports whether e is one of the known eras.
func (e Era) Valid() bool {
	for _, known := range Eras {
		if e == known {
			return true
		}
	}
	return false
}

// YearRange is an inclusive publication-year interval.
type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether year lies in the range.
func (r YearRange) Contains(year int) bool {
	return year >= r.Min && year <= r.Max
}

// FilterState is the catalog criteria shared between the explorer and the
// full listing. Empty or nil fields impose no constraint.
//
// Era, when set, takes precedence over Years. Where is an optional
// expression evaluated after the structured criteria.
type FilterState struct {
	Genres  []string   `json:"genres,omitempty"`
	Authors []string   `json:"authors,omitempty"`
	Years   *YearRange `json:"years,omitempty"`
	Era     Era        `json:"era,omitempty"`
	Where   string     `json:"where,omitempty"`
}

// IsEmpty reports whether no dimension is constrained.
func (f FilterState) IsEmpty() bool {
	return len(f.Genres) == 0 && len(f.Authors) == 0 && f.Years == nil && f.Era == "" && f.Where == ""
}

// Clone returns a deep copy.
func (f FilterState) Clone() FilterState {
	out := FilterState{Era: f.Era, Where: f.Where}
	if f.Genres != nil {
		out.Genres = append([]string(nil), f.Genres...)
	}
	if f.Authors != nil {
		out.Authors = append([]string(nil), f.Authors...)
	}
	if f.Years != nil {
		years := *f.Years
		out.Years = &years
	}
	return out
}

// SavedFilter is a filter state stored under a session ID.
type SavedFilter struct {
	SessionID string      `json:"session_id"`
	Filters   FilterState `json:"filters"`
}
