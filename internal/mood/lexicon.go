package mood

import "strings"

// keywordRule maps a set of trigger substrings to a mood.
type keywordRule struct {
	mood     Label
	keywords []string
}

// overrideRules are checked in order; the first rule with a matching keyword wins.
// Matching is plain substring containment, so "concentrat" covers
// "concentrate" and "concentration".
var overrideRules = []keywordRule{
	{mood: Romantic, keywords: []string{"love", "crush", "romantic", "date", "hearts"}},
	{mood: Calm, keywords: []string{"calm", "peaceful", "relax", "breathe", "meditate"}},
	{mood: Study, keywords: []string{"study", "focus", "concentrat"}},
	{mood: Gaming, keywords: []string{"game", "gaming", "valorant", "pubg", "fortnite"}},
}

// negativeRules refine a negative sentiment. Anger is checked before loneliness.
var negativeRules = []keywordRule{
	{mood: Angry, keywords: []string{"angry", "mad", "rage"}},
	{mood: Lonely, keywords: []string{"lonely", "alone"}},
}

// MatchKeywords scans text for topical cues that override statistical sentiment.
// It returns the matched mood and true, or "" and false when nothing matches.
func MatchKeywords(text string) (Label, bool) {
	return firstMatch(strings.ToLower(text), overrideRules)
}

// firstMatch returns the mood of the first rule with a keyword contained in lower.
func firstMatch(lower string, rules []keywordRule) (Label, bool) {
	for _, rule := range rules {
		if containsAny(lower, rule.keywords) {
			return rule.mood, true
		}
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
