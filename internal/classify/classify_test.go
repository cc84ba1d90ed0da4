package classify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchesAI(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{name: "ai as word", title: "AI Specialist", want: true},
		{name: "ai case insensitive", title: "Senior ai researcher", want: true},
		{name: "ai inside word does not match", title: "Maintenance Technician", want: false},
		{name: "ml as word", title: "ML Engineer", want: true},
		{name: "ml inside word does not match", title: "HTML Developer", want: false},
		{name: "phrase match", title: "Machine Learning Scientist", want: true},
		{name: "nlp", title: "NLP Research Assistant", want: true},
		{name: "data science", title: "Director of Data Science", want: true},
		{name: "model risk", title: "Model Risk Analyst", want: true},
		{name: "no match", title: "Marketing Coordinator", want: false},
		{name: "empty title", title: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesAI(tt.title); got != tt.want {
				t.Errorf("MatchesAI(%q) = %v, want %v", tt.title, got, tt.want)
			}
		})
	}
}

func TestFamily(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{name: "data", title: "Data Analyst", want: "Data & Analytics"},
		{name: "marketing", title: "Marketing Coordinator", want: "Marketing"},
		{name: "hr", title: "HR Business Partner", want: "Human Resources"},
		{name: "it", title: "Software Developer", want: "IT/CS"},
		{name: "no rule matches", title: "Park Ranger", want: OtherFamily},
		// "Data Engineer" matches both the Data & Analytics and IT/CS rule
		// sets; the earlier-listed family wins.
		{name: "priority order", title: "Data Engineer", want: "Data & Analytics"},
		{name: "talent before it", title: "Talent Systems Lead", want: "Human Resources"},
		{name: "case insensitive", title: "BIOSTATISTICIAN", want: "Data & Analytics"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Family(tt.title); got != tt.want {
				t.Errorf("Family(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestFamilyIsTotal(t *testing.T) {
	known := map[string]bool{
		"Data & Analytics": true,
		"Marketing":        true,
		"Human Resources":  true,
		"IT/CS":            true,
		OtherFamily:        true,
	}
	for _, title := range []string{"", "Data Engineer", "Chef", "AI Specialist", "x"} {
		require.True(t, known[Family(title)], "Family(%q) outside the fixed label set", title)
	}
}

func TestIsITSeries(t *testing.T) {
	require.True(t, IsITSeries([]string{"2210"}))
	require.True(t, IsITSeries([]string{"0301", "1550"}))
	require.False(t, IsITSeries([]string{"9999"}))
	require.False(t, IsITSeries(nil))
	require.False(t, IsITSeries([]string{}))
}

func TestCountMarketTerms(t *testing.T) {
	counts := map[string]int{}
	CountMarketTerms("Machine Learning Engineer (NLP)", counts)
	CountMarketTerms("Head of Data Science and Machine Learning", counts)
	CountMarketTerms("Plumber", counts)

	require.Equal(t, 2, counts["machine learning"])
	require.Equal(t, 1, counts["nlp"])
	require.Equal(t, 1, counts["data science"])
	require.Zero(t, counts["model risk"])
}
