package models

import (
	"encoding/json"
	"testing"
)

func TestWindowStatsShare(t *testing.T) {
	tests := []struct {
		name  string
		stats WindowStats
		want  float64
	}{
		{name: "normal share", stats: WindowStats{Label: "Mar 2025", Total: 10, AI: 2}, want: 20.0},
		{name: "zero total yields zero", stats: WindowStats{Label: "Apr 2025", Total: 0, AI: 0}, want: 0.0},
		{name: "all matched", stats: WindowStats{Label: "May 2025", Total: 4, AI: 4}, want: 100.0},
		{name: "none matched", stats: WindowStats{Label: "Jun 2025", Total: 7, AI: 0}, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stats.Share(); got != tt.want {
				t.Errorf("Share() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWindowStatsValidate(t *testing.T) {
	tests := []struct {
		name    string
		stats   WindowStats
		wantErr bool
	}{
		{name: "valid", stats: WindowStats{Label: "Mar 2025", Total: 10, AI: 2}, wantErr: false},
		{name: "empty label", stats: WindowStats{Total: 10, AI: 2}, wantErr: true},
		{name: "negative total", stats: WindowStats{Label: "Mar 2025", Total: -1}, wantErr: true},
		{name: "ai exceeds total", stats: WindowStats{Label: "Mar 2025", Total: 3, AI: 4}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFamilySharesGet(t *testing.T) {
	shares := FamilyShares{
		{Family: "Data & Analytics", Share: 25.0},
		{Family: "Marketing", Share: 0.0},
	}

	if got, ok := shares.Get("Data & Analytics"); !ok || got != 25.0 {
		t.Errorf("Get(Data & Analytics) = %v, %v", got, ok)
	}
	if got, ok := shares.Get("Marketing"); !ok || got != 0.0 {
		t.Errorf("Get(Marketing) = %v, %v", got, ok)
	}
	if _, ok := shares.Get("Human Resources"); ok {
		t.Error("Get(Human Resources) should report absence")
	}
}

func TestAdzunaSnapshotMarshalKeepsZeroMetrics(t *testing.T) {
	snap := AdzunaSnapshot{
		Enabled:           true,
		WindowDays:        30,
		SampledPages:      5,
		SampledResults:    120,
		TopCategories:     []NamedCount{},
		TopAITermsInTitle: []TermCount{},
		Note:              "note",
	}

	data, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	want := map[string]string{
		"aiFlaggedResults":   "0",
		"aiShareInSamplePct": "0",
		"topCategories":      "[]",
		"topAITermsInTitles": "[]",
	}
	for key, value := range want {
		raw, ok := decoded[key]
		if !ok {
			t.Errorf("key %q missing from enabled snapshot", key)
			continue
		}
		if string(raw) != value {
			t.Errorf("key %q = %s, want %s", key, raw, value)
		}
	}
}

func TestLensSnapshotsMarshalDisabledPlaceholder(t *testing.T) {
	tests := []struct {
		name string
		lens any
	}{
		{name: "adzuna", lens: AdzunaSnapshot{Enabled: false, Note: "keys not configured"}},
		{name: "onet", lens: OnetSnapshot{Enabled: false, Note: "keys not configured"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.lens)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			var decoded map[string]any
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if len(decoded) != 2 {
				t.Errorf("disabled placeholder has %d keys, want 2: %s", len(decoded), data)
			}
			if decoded["enabled"] != false {
				t.Errorf("enabled = %v, want false", decoded["enabled"])
			}
			if decoded["note"] != "keys not configured" {
				t.Errorf("note = %v, want configured hint", decoded["note"])
			}
		})
	}
}

func TestOccupationTechMarshal(t *testing.T) {
	resolved := OccupationTech{
		OnetSoc:         "15-2051.00",
		Occupation:      "Data Scientists",
		HotTechnologies: []HotTechnology{},
	}
	data, err := json.Marshal(resolved)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if raw, ok := decoded["hotTechnologies"]; !ok || string(raw) != "[]" {
		t.Errorf("hotTechnologies = %s, want []", raw)
	}
	if _, ok := decoded["error"]; ok {
		t.Error("resolved entry should not carry an error key")
	}

	failed := OccupationTech{
		OnetSoc:    "15-1252.00",
		Occupation: "Software Developers",
		Error:      "onet returned status 404",
	}
	data, err = json.Marshal(failed)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	decoded = nil
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := decoded["hotTechnologies"]; ok {
		t.Error("failed entry should not carry a technology list")
	}
	if raw := decoded["error"]; string(raw) != `"onet returned status 404"` {
		t.Errorf("error = %s, want inline lookup error", raw)
	}
}

func TestReportValidate(t *testing.T) {
	valid := func() *Report {
		return &Report{
			LastUpdated: "2026-08-28",
			Takeaway:    Takeaway{Headline: "headline"},
			Charts: Charts{
				AIMentionsTrend: Chart{Labels: []string{"Jul 2026"}, Values: []float64{12.5}},
			},
			Sources: []Source{{Name: "source", URL: "https://example.com"}},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("valid report failed validation: %v", err)
	}

	r := valid()
	r.LastUpdated = ""
	if err := r.Validate(); err == nil {
		t.Error("expected error for empty lastUpdated")
	}

	r = valid()
	r.Charts.AIMentionsTrend.Values = nil
	if err := r.Validate(); err == nil {
		t.Error("expected error for label/value length mismatch")
	}

	r = valid()
	r.Sources = nil
	if err := r.Validate(); err == nil {
		t.Error("expected error for empty sources")
	}
}
