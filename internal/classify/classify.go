// Package classify holds the transparent, editable classification rules the
// dashboard is built on: the AI term dictionary applied to job titles, the
// ordered job-family rules, and the set of federal occupational series codes
// treated as IT/CS.
//
// All tables are compiled once at package init into read-only structures;
// nothing in this package mutates state after that.
package classify

import (
	"fmt"
	"regexp"
	"strings"
)

// aiTitlePatterns is the published AI term dictionary. Matching is
// case-insensitive; word-boundary anchors keep short tokens like "ai" and
// "ml" from firing inside unrelated words.
var aiTitlePatterns = []string{
	`\bai\b`,
	`artificial intelligence`,
	`machine learning`,
	`\bml\b`,
	`generative ai`,
	`\bllm\b`,
	`prompt engineering`,
	`natural language processing`,
	`\bnlp\b`,
	`data science`,
	`model risk`,
}

var aiRegex = compileAlternation(aiTitlePatterns)

// MatchesAI reports whether a job title mentions any term from the AI
// dictionary.
func MatchesAI(title string) bool {
	return aiRegex.MatchString(title)
}

// familyRule pairs a family label with its compiled title patterns. Rules are
// evaluated in order; the first match wins, so earlier families take priority
// when a title matches several rule sets.
type familyRule struct {
	label string
	re    *regexp.Regexp
}

// OtherFamily is the sentinel label for titles no rule matches.
const OtherFamily = "Other"

var familyRules = []familyRule{
	{"Data & Analytics", compileAlternation([]string{
		`data`, `analytics`, `statistic`, `research`, `operations research`,
		`biostat`, `economist`, `modeler`, `scientist`,
	})},
	{"Marketing", compileAlternation([]string{
		`marketing`, `communications`, `brand`, `content`, `social media`,
		`seo`, `growth`, `digital marketing`, `market research`,
	})},
	{"Human Resources", compileAlternation([]string{
		`human resources`, `\bhr\b`, `talent`, `recruit`, `people analytics`,
		`learning`, `organizational`, `workforce`,
	})},
	{"IT/CS", compileAlternation([]string{
		`\bit\b`, `information technology`, `software`, `developer`, `engineer`,
		`cyber`, `security`, `cloud`, `systems`, `network`, `devops`,
	})},
}

// Family classifies a title into exactly one family label, or OtherFamily
// when no rule matches.
func Family(title string) string {
	for _, rule := range familyRules {
		if rule.re.MatchString(title) {
			return rule.label
		}
	}
	return OtherFamily
}

// itSeries is the set of federal occupational series codes commonly
// associated with IT/CS.
var itSeries = map[string]struct{}{
	"2210": {},
	"1550": {},
	"1560": {},
	"0854": {},
	"0855": {},
}

// IsITSeries reports whether any code in the list belongs to the known IT/CS
// series set. Used to classify by authoritative code when the source
// provides one, with Family as the title-based fallback.
func IsITSeries(codes []string) bool {
	for _, code := range codes {
		if _, ok := itSeries[code]; ok {
			return true
		}
	}
	return false
}

// MarketTerms is the term list counted individually in the broader-market
// lens. Terms are matched as literal case-insensitive substrings.
var MarketTerms = []string{
	"artificial intelligence", "machine learning", "generative ai", "llm",
	"prompt engineering", "nlp", "data science", "model risk",
}

var marketTermRegexps = func() []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(MarketTerms))
	for i, term := range MarketTerms {
		res[i] = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(term))
	}
	return res
}()

// CountMarketTerms increments counts for each market term occurring in the
// title. Counts accumulate across calls on the same map.
func CountMarketTerms(title string, counts map[string]int) {
	for i, re := range marketTermRegexps {
		if re.MatchString(title) {
			counts[MarketTerms[i]]++
		}
	}
}

func compileAlternation(patterns []string) *regexp.Regexp {
	parts := make([]string, len(patterns))
	for i, p := range patterns {
		parts[i] = fmt.Sprintf("(?:%s)", p)
	}
	return regexp.MustCompile(`(?i)` + strings.Join(parts, "|"))
}
