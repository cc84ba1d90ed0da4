// Package models defines the core domain entities for the ai-jobs-pulse pipeline:
// raw job-posting records streamed from upstream APIs, windowed aggregation
// statistics, and the final dashboard report document.
//
// Records are ephemeral; they exist only while a single streaming pass is
// consuming them. Statistics and the report are immutable once constructed.
package models

// JobRecord is one job posting as streamed from an upstream source.
// Title may be empty; aggregators skip such records before counting.
// Series holds zero or more occupational series codes when the source
// provides an authoritative classification.
type JobRecord struct {
	Title  string
	Series []string
}

// HasTitle reports whether the record carries a usable title.
func (r JobRecord) HasTitle() bool {
	return r.Title != ""
}
