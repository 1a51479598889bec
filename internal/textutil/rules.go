package textutil

import (
	"regexp"
	"strings"
)

// normalizeRule strips one class of naming noise from a title. Weight is the
// similarity reported when stripping makes two titles equal; containment
// after stripping reports weight * containmentFactor.
type normalizeRule struct {
	label   string
	pattern *regexp.Regexp
	weight  float64
}

const containmentFactor = 0.8

// normalizeRules is evaluated in order; the first rule whose application
// makes the two cleaned titles equal (or one a substring of the other)
// decides the score. Order matters: it determines which weight wins when
// several rules would fire.
var normalizeRules = []normalizeRule{
	{
		label:   "edition_suffix",
		pattern: regexp.MustCompile(`(?:[\s:,-]+(?:deluxe|edition|version|board game|card game|game))+[\s.!]*$`),
		weight:  0.90,
	},
	{
		label:   "ordinal_suffix",
		pattern: regexp.MustCompile(`[\s:,-]+(?:(?:[2-9]|10)(?:st|nd|rd|th)?|ii|iii|iv|v|vi|vii|viii|ix|x)(?:[\s.]*ed(?:ition)?)?[\s.]*$`),
		weight:  0.85,
	},
	{
		label:   "expansion_suffix",
		pattern: regexp.MustCompile(`[\s:,-]+(?:expansion(?:\s+pack)?|add[\s-]?on)[\s.]*$`),
		weight:  0.80,
	},
	{
		label:   "punctuation",
		pattern: regexp.MustCompile(`[^\w\s]+`),
		weight:  0.95,
	},
	{
		label:   "leading_article",
		pattern: regexp.MustCompile(`^the\s+`),
		weight:  0.90,
	},
	{
		label:   "trailing_year",
		pattern: regexp.MustCompile(`[\s:,-]+\(?\d{4}\)?[\s.]*$`),
		weight:  0.85,
	},
}

// ScoreNormalized applies the normalization rules to both titles and returns
// the weight of the first rule under which they become equal, or weight *
// containmentFactor when one cleaned title contains the other. Returns 0 when
// no rule fires; callers fall through to the next similarity strategy.
//
// Each rule cleans both sides identically and containment is checked in both
// directions, so ScoreNormalized(a, b) == ScoreNormalized(b, a).
func ScoreNormalized(a, b string) float64 {
	a = collapseSpaces(Fold(a))
	b = collapseSpaces(Fold(b))
	if a == "" || b == "" || a == b {
		return 0
	}
	for _, rule := range normalizeRules {
		ca := rule.clean(a)
		cb := rule.clean(b)
		if ca == "" || cb == "" {
			continue
		}
		if ca == a && cb == b {
			// Rule touched neither side; whatever relation holds between
			// the cleaned strings is not this rule's doing.
			continue
		}
		if ca == cb {
			return rule.weight
		}
		if strings.Contains(ca, cb) || strings.Contains(cb, ca) {
			return rule.weight * containmentFactor
		}
	}
	return 0
}

func (r normalizeRule) clean(s string) string {
	cleaned := r.pattern.ReplaceAllString(s, " ")
	return strings.Trim(collapseSpaces(cleaned), " :,-")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
