package nlu

import "strings"

// Intent is a coarse classification of a user message's purpose. The string
// value doubles as the metrics counter key.
type Intent string

const (
	// IntentGreeting covers hellos in any supported language.
	IntentGreeting Intent = "Greeting"
	// IntentWebsiteRequest signals interest in starting a website project.
	IntentWebsiteRequest Intent = "WebsiteRequest"
	// IntentPricing asks about cost.
	IntentPricing Intent = "Pricing"
	// IntentContact asks how to reach the agency.
	IntentContact Intent = "Contact"
	// IntentHelp asks what the bot can do.
	IntentHelp Intent = "Help"
	// IntentServices asks what the agency offers.
	IntentServices Intent = "Services"
	// IntentUnknown is returned when no keyword list matches.
	IntentUnknown Intent = "Unknown"
)

// intentKeywords pairs an intent with its multilingual keyword list. Order is
// the fixed classification priority: the first intent with any match wins.
//
// Matching is deliberately substring containment, not token-boundary matching.
// A keyword embedded in an unrelated longer word is a known false positive;
// downstream behavior (and its tests) depend on this staying as is.
var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentGreeting, []string{
		"hello", "hi", "hey", "good morning",
		"bonjour", "salut",
		"cześć", "czesc", "witam", "witaj",
		"hola", "buenos",
	}},
	{IntentWebsiteRequest, []string{
		"website", "web site", "webpage", "e-commerce", "ecommerce", "online store",
		"site web",
		"strona", "stronę", "strone", "sklep",
		"sitio web",
	}},
	{IntentPricing, []string{
		"price", "pricing", "cost", "how much", "quote",
		"prix", "tarif", "combien",
		"cena", "cennik", "koszt",
		"precio", "cuánto", "cuanto",
	}},
	{IntentContact, []string{
		"contact", "email", "phone",
		"téléphone", "telephone",
		"kontakt", "telefon",
		"contacto", "correo",
	}},
	{IntentHelp, []string{
		"help",
		"aide",
		"pomoc",
		"ayuda",
	}},
	{IntentServices, []string{
		"service", "offer",
		"offre",
		"usługi", "uslugi", "oferta",
		"servicio",
	}},
}

// Detect classifies msg into one of the fixed intents using case-insensitive
// substring containment, evaluated in fixed priority order.
func Detect(msg string) Intent {
	lower := strings.ToLower(msg)
	for _, entry := range intentKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.intent
			}
		}
	}
	return IntentUnknown
}
