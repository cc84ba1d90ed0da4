package models

import "errors"

// WindowStats holds posting counts for one calendar-month window.
// Created once per window during trend computation and never mutated after.
type WindowStats struct {
	Label string `json:"label"` // e.g. "Mar 2025"
	Total int    `json:"total"` // postings with a title in the window
	AI    int    `json:"ai"`    // subset whose title matched the AI term dictionary
}

// Share returns the AI percentage for the window. A window with no postings
// has a share of 0, never a division error.
func (w WindowStats) Share() float64 {
	if w.Total == 0 {
		return 0
	}
	return float64(w.AI) / float64(w.Total) * 100.0
}

// Validate checks the window counter invariants.
func (w WindowStats) Validate() error {
	if w.Label == "" {
		return errors.New("window label must not be empty")
	}
	if w.Total < 0 {
		return errors.New("total must not be negative")
	}
	if w.AI < 0 {
		return errors.New("ai count must not be negative")
	}
	if w.AI > w.Total {
		return errors.New("ai count must not exceed total")
	}
	return nil
}

// FamilyShare is the AI percentage for one job family.
type FamilyShare struct {
	Family string
	Share  float64
}

// FamilyShares maps job families to AI percentages, in the order the families
// were first observed in the record stream. The ordering is the documented
// tie-break for headline selection: equal shares resolve to the family seen
// first, which keeps the output reproducible for a fixed input stream.
type FamilyShares []FamilyShare

// Get returns the share for a family and whether it was observed.
func (f FamilyShares) Get(family string) (float64, bool) {
	for _, fs := range f {
		if fs.Family == family {
			return fs.Share, true
		}
	}
	return 0, false
}
