package report

import (
	"fmt"

	"github.com/workforce-signals/ai-jobs-pulse/internal/models"
)

// Fixed narrative blocks rendered verbatim on the dashboard. Computed metrics
// never feed into these except where noted.

const headline = "NKU is ahead of the curve: this dashboard auto-refreshes from credible labor-market signals to keep academic planning current."

const subhead = "We pair public U.S. government job-posting trends (USAJOBS) with a broader commercial-market pulse (Adzuna) " +
	"and standardized occupation-linked skills language (O*NET). The result is an executive-ready view of where AI is showing up, " +
	"how fast expectations are shifting, and which skills map cleanly to curriculum outcomes across colleges."

func executiveNotes(pulledOn string) []string {
	return []string{
		fmt.Sprintf("Auto-refresh date: %s. Dashboard data is rebuilt on schedule via GitHub Actions and published to GitHub Pages.", pulledOn),
		"Credibility by design: government postings + official skills taxonomy, supplemented by a broader market snapshot.",
		"Transparency: AI signal is measured using a published, editable dictionary of AI terms and clear job-family rules.",
	}
}

var coreSkills = []models.Skill{
	{Title: "AI literacy & judgment", Desc: "Limits, failure modes, verification habits, and when not to use AI."},
	{Title: "Prompting + iteration", Desc: "Clear constraints, examples, critique loops, and evaluation criteria."},
	{Title: "Data literacy", Desc: "Data quality, privacy basics, measurement, and experimentation mindset."},
	{Title: "Responsible AI", Desc: "Bias, privacy/security, transparency, and human oversight."},
	{Title: "Human skills amplified by AI", Desc: "Problem framing, communication, domain context, ethical reasoning."},
}

var jobFamilies = models.JobFamilies{
	NonTechnical: []string{
		"AI-assisted workflow design (SOPs + QA checklists)",
		"Tool evaluation (capabilities, cost, risk, governance)",
		"Data-informed decision making and impact measurement",
		"Change management and stakeholder communication",
	},
	Technical: []string{
		"LLM integration patterns (RAG, tool use, evaluation)",
		"Testing and evaluation (quality, bias, robustness)",
		"Monitoring and lifecycle (drift, feedback, incident response)",
		"Security and privacy engineering fundamentals",
	},
	HighStakes: []string{
		"Risk assessment + controls (auditability, oversight)",
		"Documentation (decision logs, transparency)",
		"Fairness/bias evaluation and mitigation",
		"Escalation paths and human-in-the-loop review",
	},
}

const trendChartTitle = "AI mentions in job postings over time (USAJOBS Historic JOA — public U.S. government postings)"

func trendChartNote(rowsSeen int) string {
	return "Monthly metric computed as: (# postings with AI terms in title) ÷ (total postings opened that month) × 100. " +
		fmt.Sprintf("Rows analyzed for this trend window: ~%s postings (counts vary by month).", comma(rowsSeen))
}

const familyChartTitle = "AI signal by job family (snapshot month, USAJOBS postings)"

const familyChartNote = "Snapshot metric computed as: (# postings with AI terms in title within a family) ÷ (total postings within that family) × 100. " +
	"Families are assigned using transparent title-based rules (editable in the script)."

const outsideITChartTitle = "AI demand extends beyond IT/CS (share of AI-flagged postings outside IT/CS, snapshot month)"

func outsideITChartNote(totalAI int) string {
	return "Computed from AI-flagged postings in the snapshot month. " +
		fmt.Sprintf("AI-flagged postings in snapshot month: %s. ", comma(totalAI)) +
		"Where available, federal occupational series codes are used to classify IT/CS; otherwise a title-based fallback is used."
}

func sources(pulledOn string) []models.Source {
	return []models.Source{
		{
			Name: fmt.Sprintf("USAJOBS Historic JOA API (public U.S. government job postings) — pulled on %s", pulledOn),
			URL:  "https://developer.usajobs.gov/api-reference/get-api-historicjoa",
		},
		{
			Name: "Adzuna Job Search API (commercial market snapshot; search results include created timestamps; requires app_id/app_key)",
			URL:  "https://developer.adzuna.com/docs/search",
		},
		{
			Name: "O*NET Web Services (official) — server-side Basic Authentication + API reference",
			URL:  "https://services.onetcenter.org/reference/",
		},
		{
			Name: "O*NET Web Services v2 — Hot Technologies endpoint (occupation-linked tech signals)",
			URL:  "https://services.onetcenter.org/reference/online/occupation/technology",
		},
		{
			Name: "O*NET OnLine Help — Web Services authentication overview (Basic auth)",
			URL:  "https://www.onetonline.org/help/onet/webservices",
		},
	}
}

// comma renders n with thousands separators, e.g. 12345 -> "12,345".
func comma(n int) string {
	s := fmt.Sprintf("%d", n)
	if n < 0 {
		return "-" + comma(-n)
	}
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
