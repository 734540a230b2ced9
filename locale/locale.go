// Package locale holds the static localized string table used by the dialogue
// engine. Strings are keyed by (language, message key) and resolved with an
// explicit English fallback, so a missing translation never produces an empty
// reply. The table is read-only after package initialization.
package locale

import "fmt"

// Key identifies one display string in the table.
type Key string

// Message keys understood by the table. Keys suffixed *Fmt carry fmt verbs and
// must be resolved through F.
const (
	KeyGreeting       Key = "greeting"
	KeyChooseLanguage Key = "choose_language"
	KeyAskName        Key = "ask_name"
	KeyAskEmailFmt    Key = "ask_email"
	KeyAskBudget      Key = "ask_budget"
	KeyAskDetails     Key = "ask_details"
	KeyInvalidName    Key = "invalid_name"
	KeyInvalidEmail   Key = "invalid_email"
	KeyInvalidBudget  Key = "invalid_budget"
	KeyPricingInfo    Key = "pricing_info"
	KeyPricingOffer   Key = "pricing_offer"
	KeyContact        Key = "contact"
	KeyHelp           Key = "help"
	KeyServices       Key = "services"
	KeyFallback       Key = "fallback"
	KeyReset          Key = "reset"
	KeyStatusFmt      Key = "status"
	KeyDeclined       Key = "declined"
	KeySummaryFmt     Key = "summary"

	KeyRemindLanguage Key = "remind_language"
	KeyRemindName     Key = "remind_name"
	KeyRemindEmail    Key = "remind_email"
	KeyRemindBudget   Key = "remind_budget"
	KeyRemindDetails  Key = "remind_details"
	KeyRemindConfirm  Key = "remind_confirm"
)

// Supported lists the language codes the table carries, in presentation order.
var Supported = []string{"en", "fr", "pl", "es"}

// IsSupported reports whether lang has a dedicated table entry.
func IsSupported(lang string) bool {
	for _, l := range Supported {
		if l == lang {
			return true
		}
	}
	return false
}

var table = map[string]map[Key]string{
	"en": {
		KeyGreeting:       "Hello! How can I help you today?",
		KeyChooseLanguage: "Please pick a language: English (en), Français (fr), Polski (pl), Español (es).",
		KeyAskName:        "Great! We'd love to help with your project. What's your name?",
		KeyAskEmailFmt:    "Nice to meet you, %s! What's your email address?",
		KeyAskBudget:      "Thanks! What budget do you have in mind for the project?",
		KeyAskDetails:     "Got it. Tell me about your requirements — what should the project include?",
		KeyInvalidName:    "That doesn't look like a name. Letters, spaces and hyphens only, please.",
		KeyInvalidEmail:   "That doesn't look like an email address. It needs an @ sign.",
		KeyInvalidBudget:  "Please give me a rough number for the budget.",
		KeyPricingInfo:    "Our projects start at $1000, depending on scope.",
		KeyPricingOffer:   "Our projects start at $1000, depending on scope. Would you like to start a project inquiry?",
		KeyContact:        "You can reach us at hello@agencyos.dev or +1 555 0100.",
		KeyHelp:           "I can help with pricing, contact info, our services, or starting a website project.",
		KeyServices:       "We offer Web Development, UI/UX Design, E-commerce and SEO & Marketing.",
		KeyFallback:       "I didn't quite catch that. Could you rephrase?",
		KeyReset:          "Okay, starting over. How can I help you?",
		KeyStatusFmt:      "Current step: %s. Say 'reset' to start over.",
		KeyDeclined:       "No problem! Let me know if you need anything else.",
		KeySummaryFmt:     "Thanks! Project summary — Name: %s, Email: %s, Budget: %s, Topics: %s. [REPORT GENERATED]",
		KeyRemindLanguage: "Back to it — which language would you like to use?",
		KeyRemindName:     "Back to it — what's your name?",
		KeyRemindEmail:    "Back to it — what's your email address?",
		KeyRemindBudget:   "Back to it — what budget do you have in mind?",
		KeyRemindDetails:  "Back to it — tell me about your requirements.",
		KeyRemindConfirm:  "Back to it — would you like to start a project inquiry?",
	},
	"fr": {
		KeyGreeting:       "Bonjour ! Comment puis-je vous aider ?",
		KeyChooseLanguage: "Choisissez une langue : English (en), Français (fr), Polski (pl), Español (es).",
		KeyAskName:        "Parfait ! Nous serions ravis de vous aider. Quel est votre nom ?",
		KeyAskEmailFmt:    "Enchanté, %s ! Quelle est votre adresse email ?",
		KeyAskBudget:      "Merci ! Quel budget envisagez-vous pour le projet ?",
		KeyAskDetails:     "Très bien. Décrivez-moi vos besoins — que doit inclure le projet ?",
		KeyInvalidName:    "Cela ne ressemble pas à un nom. Lettres, espaces et tirets uniquement.",
		KeyInvalidEmail:   "Cela ne ressemble pas à une adresse email. Il faut un @.",
		KeyInvalidBudget:  "Donnez-moi un chiffre approximatif pour le budget.",
		KeyPricingInfo:    "Nos projets commencent à $1000, selon l'ampleur.",
		KeyPricingOffer:   "Nos projets commencent à $1000, selon l'ampleur. Voulez-vous démarrer une demande de projet ?",
		KeyContact:        "Vous pouvez nous joindre à hello@agencyos.dev ou au +1 555 0100.",
		KeyHelp:           "Je peux vous renseigner sur les prix, le contact, nos services, ou lancer un projet de site web.",
		KeyServices:       "Nous proposons Web Development, UI/UX Design, E-commerce et SEO & Marketing.",
		KeyFallback:       "Je n'ai pas bien compris. Pouvez-vous reformuler ?",
		KeyReset:          "D'accord, on recommence. Comment puis-je vous aider ?",
		KeyStatusFmt:      "Étape en cours : %s. Dites 'reset' pour recommencer.",
		KeyDeclined:       "Pas de problème ! Dites-moi si vous avez besoin d'autre chose.",
		KeySummaryFmt:     "Merci ! Résumé du projet — Nom : %s, Email : %s, Budget : %s, Sujets : %s. [REPORT GENERATED]",
		KeyRemindLanguage: "Revenons-y — quelle langue souhaitez-vous utiliser ?",
		KeyRemindName:     "Revenons-y — quel est votre nom ?",
		KeyRemindEmail:    "Revenons-y — quelle est votre adresse email ?",
		KeyRemindBudget:   "Revenons-y — quel budget envisagez-vous ?",
		KeyRemindDetails:  "Revenons-y — décrivez-moi vos besoins.",
		KeyRemindConfirm:  "Revenons-y — voulez-vous démarrer une demande de projet ?",
	},
	"pl": {
		KeyGreeting:       "Cześć! Jak mogę pomóc?",
		KeyChooseLanguage: "Wybierz język: English (en), Français (fr), Polski (pl), Español (es).",
		KeyAskName:        "Świetnie! Chętnie pomożemy przy Twoim projekcie. Jak masz na imię?",
		KeyAskEmailFmt:    "Miło Cię poznać, %s! Jaki jest Twój adres email?",
		KeyAskBudget:      "Dzięki! Jaki budżet przewidujesz na projekt?",
		KeyAskDetails:     "Rozumiem. Opowiedz o wymaganiach — co projekt powinien zawierać?",
		KeyInvalidName:    "To nie wygląda na imię. Tylko litery, spacje i myślniki.",
		KeyInvalidEmail:   "To nie wygląda na adres email. Potrzebny jest znak @.",
		KeyInvalidBudget:  "Podaj przybliżoną kwotę budżetu.",
		KeyPricingInfo:    "Nasze projekty zaczynają się od $1000, zależnie od zakresu.",
		KeyPricingOffer:   "Nasze projekty zaczynają się od $1000, zależnie od zakresu. Chcesz rozpocząć zapytanie projektowe?",
		KeyContact:        "Napisz do nas: hello@agencyos.dev albo zadzwoń: +1 555 0100.",
		KeyHelp:           "Mogę pomóc z cennikiem, kontaktem, naszymi usługami albo rozpocząć projekt strony.",
		KeyServices:       "Oferujemy Web Development, UI/UX Design, E-commerce oraz SEO & Marketing.",
		KeyFallback:       "Nie do końca zrozumiałem. Możesz powtórzyć inaczej?",
		KeyReset:          "Dobrze, zaczynamy od nowa. Jak mogę pomóc?",
		KeyStatusFmt:      "Obecny krok: %s. Napisz 'reset', aby zacząć od nowa.",
		KeyDeclined:       "Nie ma sprawy! Daj znać, jeśli będziesz czegoś potrzebować.",
		KeySummaryFmt:     "Dzięki! Podsumowanie projektu — Imię: %s, Email: %s, Budżet: %s, Tematy: %s. [REPORT GENERATED]",
		KeyRemindLanguage: "Wracajmy — jakiego języka chcesz używać?",
		KeyRemindName:     "Wracajmy — jak masz na imię?",
		KeyRemindEmail:    "Wracajmy — jaki jest Twój adres email?",
		KeyRemindBudget:   "Wracajmy — jaki budżet przewidujesz?",
		KeyRemindDetails:  "Wracajmy — opowiedz o wymaganiach.",
		KeyRemindConfirm:  "Wracajmy — chcesz rozpocząć zapytanie projektowe?",
	},
	"es": {
		KeyGreeting:       "Hola! ¿Cómo puedo ayudarte?",
		KeyChooseLanguage: "Elige un idioma: English (en), Français (fr), Polski (pl), Español (es).",
		KeyAskName:        "¡Genial! Nos encantaría ayudarte con tu proyecto. ¿Cómo te llamas?",
		KeyAskEmailFmt:    "¡Encantado, %s! ¿Cuál es tu correo electrónico?",
		KeyAskBudget:      "¡Gracias! ¿Qué presupuesto tienes en mente para el proyecto?",
		KeyAskDetails:     "Entendido. Cuéntame los requisitos — ¿qué debe incluir el proyecto?",
		KeyInvalidName:    "Eso no parece un nombre. Solo letras, espacios y guiones.",
		KeyInvalidEmail:   "Eso no parece un correo. Necesita una @.",
		KeyInvalidBudget:  "Dame una cifra aproximada para el presupuesto.",
		KeyPricingInfo:    "Nuestros proyectos empiezan en $1000, según el alcance.",
		KeyPricingOffer:   "Nuestros proyectos empiezan en $1000, según el alcance. ¿Quieres iniciar una consulta de proyecto?",
		KeyContact:        "Puedes escribirnos a hello@agencyos.dev o llamar al +1 555 0100.",
		KeyHelp:           "Puedo ayudarte con precios, contacto, nuestros servicios o iniciar un proyecto web.",
		KeyServices:       "Ofrecemos Web Development, UI/UX Design, E-commerce y SEO & Marketing.",
		KeyFallback:       "No te he entendido bien. ¿Puedes decirlo de otra forma?",
		KeyReset:          "Vale, empezamos de nuevo. ¿Cómo puedo ayudarte?",
		KeyStatusFmt:      "Paso actual: %s. Escribe 'reset' para empezar de nuevo.",
		KeyDeclined:       "¡Sin problema! Avísame si necesitas algo más.",
		KeySummaryFmt:     "¡Gracias! Resumen del proyecto — Nombre: %s, Email: %s, Presupuesto: %s, Temas: %s. [REPORT GENERATED]",
		KeyRemindLanguage: "Volvamos — ¿qué idioma quieres usar?",
		KeyRemindName:     "Volvamos — ¿cómo te llamas?",
		KeyRemindEmail:    "Volvamos — ¿cuál es tu correo?",
		KeyRemindBudget:   "Volvamos — ¿qué presupuesto tienes en mente?",
		KeyRemindDetails:  "Volvamos — cuéntame los requisitos.",
		KeyRemindConfirm:  "Volvamos — ¿quieres iniciar una consulta de proyecto?",
	},
}

// T resolves a display string for (lang, key), falling back to English when
// the language or the individual key is missing.
func T(lang string, key Key) string {
	if msgs, ok := table[lang]; ok {
		if s, ok := msgs[key]; ok {
			return s
		}
	}
	return table["en"][key]
}

// F resolves a format string via T and interpolates args.
func F(lang string, key Key, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}
