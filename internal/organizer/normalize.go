package organizer

import "strings"

// The model occasionally answers with English or off-list labels even though
// the prompt pins the enumerations. Known aliases are folded back onto the
// canonical Korean values; unknown difficulty falls back to the default,
// unknown category text is kept as-is.

var difficultyAliases = map[string]string{
	"쉬움":     "쉬움",
	"easy":   "쉬움",
	"보통":     "보통",
	"normal": "보통",
	"medium": "보통",
	"어려움":    "어려움",
	"hard":   "어려움",
}

var categoryAliases = map[string]string{
	"한식":       "한식",
	"korean":   "한식",
	"중식":       "중식",
	"chinese":  "중식",
	"양식":       "양식",
	"western":  "양식",
	"일식":       "일식",
	"japanese": "일식",
	"기타":       "기타",
	"other":    "기타",
}

func normalizeDifficulty(value string) string {
	if canonical, ok := difficultyAliases[strings.ToLower(strings.TrimSpace(value))]; ok {
		return canonical
	}
	return DefaultDifficulty
}

func normalizeCategory(value string) string {
	trimmed := strings.TrimSpace(value)
	if canonical, ok := categoryAliases[strings.ToLower(trimmed)]; ok {
		return canonical
	}
	if trimmed == "" {
		return DefaultCategory
	}
	return trimmed
}
