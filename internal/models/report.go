package models

import (
	"encoding/json"
	"errors"
)

// Report is the single output artifact of a run: the nested document the
// dashboard front end reads. It is assembled exactly once per run and written
// to disk as pretty-printed JSON.
type Report struct {
	LastUpdated  string        `json:"lastUpdated"` // ISO date of the run
	RunID        string        `json:"runId"`
	Takeaway     Takeaway      `json:"takeaway"`
	CoreSkills   []Skill       `json:"coreSkills"`
	Charts       Charts        `json:"charts"`
	JobFamilies  JobFamilies   `json:"jobFamilies"`
	MarketLenses *MarketLenses `json:"marketLenses,omitempty"`
	Sources      []Source      `json:"sources"`
}

// Takeaway carries the executive narrative blocks.
type Takeaway struct {
	Headline       string   `json:"headline"`
	Subhead        string   `json:"subhead"`
	ExecutiveNotes []string `json:"executiveNotes"`
}

// Skill is one entry in the fixed core-skills list.
type Skill struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// Charts groups the three computed chart objects.
type Charts struct {
	AIMentionsTrend    Chart `json:"aiMentionsTrend"`
	AIMentionsByFamily Chart `json:"aiMentionsByFamily"`
	AIOutsideITShare   Chart `json:"aiOutsideITShare"`
}

// Chart is one labeled series with an explanatory note.
type Chart struct {
	Title  string    `json:"title"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Note   string    `json:"note"`
}

// JobFamilies holds the fixed curriculum-mapping lists.
type JobFamilies struct {
	NonTechnical []string `json:"Non-technical"`
	Technical    []string `json:"Technical"`
	HighStakes   []string `json:"High-stakes"`
}

// MarketLenses groups the supplementary source snapshots. Each lens degrades
// to a disabled placeholder (Enabled=false plus a note) when its credentials
// are not configured.
type MarketLenses struct {
	AdzunaUSSnapshot    *AdzunaSnapshot `json:"adzunaUSSnapshot"`
	OnetHotTechnologies *OnetSnapshot   `json:"onetHotTechnologies"`
}

// AdzunaSnapshot is a sampled view of recent commercial postings. A disabled
// snapshot serializes as the two-key placeholder; an enabled one always
// carries every metric key, zero-valued or not.
type AdzunaSnapshot struct {
	Enabled           bool         `json:"enabled"`
	WindowDays        int          `json:"windowDays"`
	SampledPages      int          `json:"sampledPages"`
	SampledResults    int          `json:"sampledResults"`
	AIFlaggedResults  int          `json:"aiFlaggedResults"`
	AIShareInSample   float64      `json:"aiShareInSamplePct"`
	TopCategories     []NamedCount `json:"topCategories"`
	TopAITermsInTitle []TermCount  `json:"topAITermsInTitles"`
	Note              string       `json:"note"`
}

// disabledLens is the placeholder shape written for a lens whose credentials
// are not configured.
type disabledLens struct {
	Enabled bool   `json:"enabled"`
	Note    string `json:"note"`
}

func (s AdzunaSnapshot) MarshalJSON() ([]byte, error) {
	if !s.Enabled {
		return json.Marshal(disabledLens{Note: s.Note})
	}
	type enabled AdzunaSnapshot
	return json.Marshal(enabled(s))
}

// NamedCount is a category with its sampled posting count.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TermCount is an AI term with the number of sampled titles mentioning it.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// OnetSnapshot carries occupation-linked hot-technology signals. Like the
// Adzuna lens, a disabled snapshot serializes as the two-key placeholder.
type OnetSnapshot struct {
	Enabled     bool             `json:"enabled"`
	Occupations []OccupationTech `json:"occupations"`
	Note        string           `json:"note"`
}

func (s OnetSnapshot) MarshalJSON() ([]byte, error) {
	if !s.Enabled {
		return json.Marshal(disabledLens{Note: s.Note})
	}
	type enabled OnetSnapshot
	return json.Marshal(enabled(s))
}

// OccupationTech is the hot-technology list for one occupation. A failed
// lookup is recorded inline via Error while sibling occupations proceed.
type OccupationTech struct {
	OnetSoc         string          `json:"onetSoc"`
	Occupation      string          `json:"occupation"`
	HotTechnologies []HotTechnology `json:"hotTechnologies"`
	Error           string          `json:"error,omitempty"`
}

// MarshalJSON writes failed lookups without a technology list: just the
// occupation identity and the inline error.
func (o OccupationTech) MarshalJSON() ([]byte, error) {
	if o.Error != "" {
		return json.Marshal(struct {
			OnetSoc    string `json:"onetSoc"`
			Occupation string `json:"occupation"`
			Error      string `json:"error"`
		}{o.OnetSoc, o.Occupation, o.Error})
	}
	type resolved OccupationTech
	return json.Marshal(resolved(o))
}

// HotTechnology is one technology entry from the skills taxonomy.
type HotTechnology struct {
	Title         string  `json:"title"`
	Percentage    float64 `json:"percentage"`
	InDemand      bool    `json:"inDemand"`
	HotTechnology bool    `json:"hotTechnology"`
	Href          string  `json:"href"`
}

// Source is one entry in the citation list.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Validate checks the structural invariants of an assembled report.
func (r *Report) Validate() error {
	if r.LastUpdated == "" {
		return errors.New("lastUpdated must not be empty")
	}
	if r.Takeaway.Headline == "" {
		return errors.New("takeaway headline must not be empty")
	}
	if len(r.Sources) == 0 {
		return errors.New("sources must not be empty")
	}
	for _, c := range []Chart{r.Charts.AIMentionsTrend, r.Charts.AIMentionsByFamily, r.Charts.AIOutsideITShare} {
		if len(c.Labels) != len(c.Values) {
			return errors.New("chart labels and values must have equal length")
		}
	}
	return nil
}
