package nlu

import "strings"

// languageMarkers maps a language code to the marker words (greeting, help,
// pricing, contact, website vocabulary) that reveal the user writing in it.
// The slice order below is the evaluation order; the more distinctive
// languages come first so shared Latin roots (contact/contacto, price/precio)
// resolve to the specific language rather than English.
var languageMarkers = []struct {
	code    string
	markers []string
}{
	{"pl", []string{"cześć", "czesc", "witam", "witaj", "pomoc", "cena", "cennik", "kontakt", "strona", "stronę", "strone", "sklep"}},
	{"fr", []string{"bonjour", "salut", "aide", "prix", "tarif", "contacter", "site web"}},
	{"es", []string{"hola", "buenos", "ayuda", "precio", "contacto", "sitio web"}},
	{"en", []string{"hello", "help", "price", "pricing", "contact", "website"}},
}

// InferLanguage scans msg for per-language marker words and returns the
// matched language code, or current when nothing matches.
func InferLanguage(msg, current string) string {
	lower := strings.ToLower(msg)
	for _, lang := range languageMarkers {
		for _, marker := range lang.markers {
			if strings.Contains(lower, marker) {
				return lang.code
			}
		}
	}
	return current
}
