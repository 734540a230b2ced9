package nlu

import (
	"strings"
	"unicode"
)

// topicVocabulary is the fixed set of project topics worth remembering: site
// types, technologies, design/marketing/mobile/backend terms.
var topicVocabulary = map[string]bool{
	// site types
	"blog": true, "shop": true, "store": true, "portfolio": true,
	"ecommerce": true, "landing": true, "cms": true, "wordpress": true,
	// backend / tech
	"api": true, "backend": true, "frontend": true, "database": true,
	"hosting": true, "rust": true, "go": true, "python": true,
	"javascript": true, "typescript": true, "php": true, "node": true,
	"react": true, "vue": true,
	// design & marketing
	"design": true, "logo": true, "branding": true, "ui": true, "ux": true,
	"seo": true, "marketing": true, "ads": true,
	// mobile
	"mobile": true, "app": true, "android": true, "ios": true,
}

// Tokenize splits text on non-alphanumeric boundaries, case-folded. Both
// topic extraction and the dialogue engine's affirmative check build on it.
func Tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// ExtractTopics tokenizes msg on non-alphanumeric boundaries (case-folded)
// and returns the tokens present in the topic vocabulary, preserving first
// occurrence order and suppressing duplicates within the message.
func ExtractTopics(msg string) []string {
	tokens := Tokenize(msg)
	var topics []string
	seen := map[string]bool{}
	for _, tok := range tokens {
		if topicVocabulary[tok] && !seen[tok] {
			seen[tok] = true
			topics = append(topics, tok)
		}
	}
	return topics
}
