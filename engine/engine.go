package engine

import (
	"context"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/agencyos/leadbot/core"
	"github.com/agencyos/leadbot/locale"
	"github.com/agencyos/leadbot/logging"
	"github.com/agencyos/leadbot/metrics"
	"github.com/agencyos/leadbot/nlu"
	"github.com/agencyos/leadbot/responder"
)

// Options configure an Engine instance.
type Options struct {
	// Metrics receives the per-language and per-intent counters recorded
	// during evaluation. Defaults to a fresh metrics.Aggregator.
	Metrics core.MetricsSink
	// Responder handles messages no intent matches while the conversation is
	// idle. Nil disables the escape hatch; unmatched messages then resolve to
	// the localized fallback reply.
	Responder responder.Responder
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Engine evaluates one conversational turn at a time. It holds no session
// state of its own; everything it needs arrives as arguments and everything
// it decides leaves as a Result.
type Engine struct {
	metrics   core.MetricsSink
	responder responder.Responder
	logger    logging.Logger
}

// New creates an Engine with optional overrides.
func New(optFns ...func(o *Options)) *Engine {
	opts := Options{
		Metrics: metrics.NewAggregator(),
		Logger:  logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Engine{
		metrics:   opts.Metrics,
		responder: opts.Responder,
		logger:    opts.Logger,
	}
}

// Result is the outcome of evaluating one turn.
type Result struct {
	// Reply is the bot's answer, already localized.
	Reply string
	// NextState is the state to write back; never empty.
	NextState core.ConversationState
	// NextData is the data to write back, including any language or keyword
	// updates picked up this turn.
	NextData core.SessionData
	// LeadCompleted is true on exactly the transition that finalizes a lead
	// (leaving the project-details step). The caller persists the lead and
	// may attach a report link to the reply on this edge, and only this one.
	LeadCompleted bool
}

// Evaluate advances the dialogue by one turn.
//
// The steps below run in a fixed priority order and the first one that
// decides the turn short-circuits: language inference and topic learning
// always run, then the global reset and status commands, then interruption
// handling (outside Idle), and finally the per-state transition.
func (e *Engine) Evaluate(
	ctx context.Context,
	state core.ConversationState,
	msg string,
	data core.SessionData,
	history []core.Message,
) Result {
	data = data.Clone()
	if data.Language == "" {
		data.Language = core.DefaultLanguage
	}

	// Step 1: language inference. The per-language counter ticks once per
	// turn for the resulting language, whatever the rest of the turn does.
	data.Language = nlu.InferLanguage(msg, data.Language)
	e.metrics.IncrLanguage(data.Language)

	// Step 2: continuous topic learning, regardless of state.
	for _, topic := range nlu.ExtractTopics(msg) {
		data.AddKeyword(topic)
	}

	trimmed := strings.TrimSpace(msg)

	// Step 3: global reset, overrides everything below.
	if strings.EqualFold(trimmed, "reset") || strings.EqualFold(trimmed, "cancel") {
		return Result{
			Reply:     locale.T(data.Language, locale.KeyReset),
			NextState: core.StateAskingLanguage,
			NextData:  core.NewSessionData(),
		}
	}

	// Step 4: global status query, state and data pass through.
	if strings.EqualFold(trimmed, "status") {
		return Result{
			Reply:     locale.F(data.Language, locale.KeyStatusFmt, stateLabel(state)),
			NextState: state,
			NextData:  data,
		}
	}

	// Step 5: interruptions only apply mid-flow.
	if state != core.StateIdle {
		if res, ok := e.interruption(state, msg, data); ok {
			return res
		}
	}

	// Step 6: the per-state transition.
	handler, ok := transitions[state]
	if !ok {
		// Unknown states cannot happen through the store, but the engine is
		// total: degrade to the idle handler rather than fail.
		handler = (*Engine).evalIdle
	}
	return handler(e, ctx, msg, data, history)
}

// transitionFunc is one per-state step of the FSM core.
type transitionFunc func(e *Engine, ctx context.Context, msg string, data core.SessionData, history []core.Message) Result

// transitions dispatches each conversation state to its handler.
var transitions = map[core.ConversationState]transitionFunc{
	core.StateAskingLanguage:            (*Engine).evalAskingLanguage,
	core.StateIdle:                      (*Engine).evalIdle,
	core.StateAskingName:                (*Engine).evalAskingName,
	core.StateAskingEmail:               (*Engine).evalAskingEmail,
	core.StateAskingBudget:              (*Engine).evalAskingBudget,
	core.StateAskingProjectDetails:      (*Engine).evalAskingProjectDetails,
	core.StateAskingProjectConfirmation: (*Engine).evalAskingProjectConfirmation,
}

// interruption answers pricing/contact/help questions mid-flow without
// abandoning the current step. Contact is suppressed while collecting an
// email address, where its keywords collide with entering one.
func (e *Engine) interruption(state core.ConversationState, msg string, data core.SessionData) (Result, bool) {
	intent := nlu.Detect(msg)
	var info locale.Key
	switch intent {
	case nlu.IntentPricing:
		info = locale.KeyPricingInfo
	case nlu.IntentContact:
		if state == core.StateAskingEmail {
			return Result{}, false
		}
		info = locale.KeyContact
	case nlu.IntentHelp:
		info = locale.KeyHelp
	default:
		return Result{}, false
	}
	e.metrics.IncrIntent(string(intent))
	reply := locale.T(data.Language, info) + " " + locale.T(data.Language, reminderKeys[state])
	return Result{Reply: reply, NextState: state, NextData: data}, true
}

// reminderKeys map each mid-flow state to the phrase that steers the user
// back after an interruption.
var reminderKeys = map[core.ConversationState]locale.Key{
	core.StateAskingLanguage:            locale.KeyRemindLanguage,
	core.StateAskingName:                locale.KeyRemindName,
	core.StateAskingEmail:               locale.KeyRemindEmail,
	core.StateAskingBudget:              locale.KeyRemindBudget,
	core.StateAskingProjectDetails:      locale.KeyRemindDetails,
	core.StateAskingProjectConfirmation: locale.KeyRemindConfirm,
}

// languageChoices maps explicit language names and codes to a language code.
var languageChoices = map[string]string{
	"en": "en", "english": "en",
	"fr": "fr", "français": "fr", "francais": "fr", "french": "fr",
	"pl": "pl", "polski": "pl", "polish": "pl",
	"es": "es", "español": "es", "espanol": "es", "spanish": "es",
}

func (e *Engine) evalAskingLanguage(_ context.Context, msg string, data core.SessionData, _ []core.Message) Result {
	lang, ok := languageChoices[strings.ToLower(strings.TrimSpace(msg))]
	if !ok {
		if inferred := nlu.InferLanguage(msg, ""); inferred != "" {
			lang, ok = inferred, true
		}
	}
	if !ok {
		prompts := make([]string, 0, len(locale.Supported))
		for _, l := range locale.Supported {
			prompts = append(prompts, locale.T(l, locale.KeyChooseLanguage))
		}
		return Result{
			Reply:     strings.Join(prompts, "\n"),
			NextState: core.StateAskingLanguage,
			NextData:  data,
		}
	}
	data.Language = lang
	return Result{
		Reply:     locale.T(lang, locale.KeyGreeting),
		NextState: core.StateIdle,
		NextData:  data,
	}
}

func (e *Engine) evalIdle(ctx context.Context, msg string, data core.SessionData, history []core.Message) Result {
	intent := nlu.Detect(msg)
	e.metrics.IncrIntent(string(intent))
	lang := data.Language
	switch intent {
	case nlu.IntentGreeting:
		return Result{Reply: locale.T(lang, locale.KeyGreeting), NextState: core.StateIdle, NextData: data}
	case nlu.IntentWebsiteRequest:
		// A new inquiry starts from a clean slate, only the language sticks.
		return Result{
			Reply:     locale.T(lang, locale.KeyAskName),
			NextState: core.StateAskingName,
			NextData:  core.SessionData{Language: lang},
		}
	case nlu.IntentPricing:
		return Result{Reply: locale.T(lang, locale.KeyPricingOffer), NextState: core.StateAskingProjectConfirmation, NextData: data}
	case nlu.IntentContact:
		return Result{Reply: locale.T(lang, locale.KeyContact), NextState: core.StateIdle, NextData: data}
	case nlu.IntentHelp:
		return Result{Reply: locale.T(lang, locale.KeyHelp), NextState: core.StateIdle, NextData: data}
	case nlu.IntentServices:
		return Result{Reply: locale.T(lang, locale.KeyServices), NextState: core.StateIdle, NextData: data}
	default:
		return e.freeForm(ctx, msg, data, history)
	}
}

// freeForm delegates an unmatched idle message to the external responder.
// Best effort, fail soft: any error or empty completion resolves to the
// localized fallback reply, never to a failed turn.
func (e *Engine) freeForm(ctx context.Context, msg string, data core.SessionData, history []core.Message) Result {
	fallback := Result{
		Reply:     locale.T(data.Language, locale.KeyFallback),
		NextState: core.StateIdle,
		NextData:  data,
	}
	if e.responder == nil {
		return fallback
	}
	convo := make([]core.Message, 0, len(history)+1)
	convo = append(convo, history...)
	convo = append(convo, core.Message{Role: core.RoleUser, Content: msg, Timestamp: time.Now()})

	start := time.Now()
	reply, err := e.responder.Complete(ctx, responder.TrimHistory(convo))
	logging.LogResponderCall(e.logger, time.Since(start), err)
	if err != nil || strings.TrimSpace(reply) == "" {
		return fallback
	}
	return Result{Reply: reply, NextState: core.StateIdle, NextData: data}
}

func (e *Engine) evalAskingName(_ context.Context, msg string, data core.SessionData, _ []core.Message) Result {
	name := strings.TrimSpace(msg)
	if !validName(name) {
		return Result{Reply: locale.T(data.Language, locale.KeyInvalidName), NextState: core.StateAskingName, NextData: data}
	}
	data.Name = name
	return Result{
		Reply:     locale.F(data.Language, locale.KeyAskEmailFmt, name),
		NextState: core.StateAskingEmail,
		NextData:  data,
	}
}

// validName accepts trimmed input longer than one rune made of letters,
// whitespace, hyphens and apostrophes only.
func validName(name string) bool {
	if utf8.RuneCountInString(name) < 2 {
		return false
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsSpace(r) && r != '-' && r != '\'' {
			return false
		}
	}
	return true
}

func (e *Engine) evalAskingEmail(_ context.Context, msg string, data core.SessionData, _ []core.Message) Result {
	if !strings.Contains(msg, "@") {
		return Result{Reply: locale.T(data.Language, locale.KeyInvalidEmail), NextState: core.StateAskingEmail, NextData: data}
	}
	data.Email = strings.TrimSpace(msg)
	return Result{Reply: locale.T(data.Language, locale.KeyAskBudget), NextState: core.StateAskingBudget, NextData: data}
}

func (e *Engine) evalAskingBudget(_ context.Context, msg string, data core.SessionData, _ []core.Message) Result {
	if !strings.ContainsFunc(msg, unicode.IsDigit) {
		return Result{Reply: locale.T(data.Language, locale.KeyInvalidBudget), NextState: core.StateAskingBudget, NextData: data}
	}
	data.Budget = strings.TrimSpace(msg)
	return Result{Reply: locale.T(data.Language, locale.KeyAskDetails), NextState: core.StateAskingProjectDetails, NextData: data}
}

func (e *Engine) evalAskingProjectDetails(_ context.Context, _ string, data core.SessionData, _ []core.Message) Result {
	name := orPlaceholder(data.Name)
	email := orPlaceholder(data.Email)
	budget := orPlaceholder(data.Budget)
	topics := "GENERAL INQUIRY"
	if len(data.DetectedKeywords) > 0 {
		topics = strings.ToUpper(strings.Join(data.DetectedKeywords, ", "))
	}
	return Result{
		Reply:         locale.F(data.Language, locale.KeySummaryFmt, name, email, budget, topics),
		NextState:     core.StateIdle,
		NextData:      data,
		LeadCompleted: true,
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// affirmatives are the language-specific yes-tokens accepted when confirming
// a project inquiry.
var affirmatives = map[string]bool{
	"yes": true, "sure": true, "ok": true, "okay": true, "yep": true,
	"tak": true, "oui": true, "si": true, "sí": true,
}

func (e *Engine) evalAskingProjectConfirmation(_ context.Context, msg string, data core.SessionData, _ []core.Message) Result {
	affirmed := false
	for _, tok := range nlu.Tokenize(msg) {
		if affirmatives[tok] {
			affirmed = true
			break
		}
	}
	if !affirmed {
		return Result{Reply: locale.T(data.Language, locale.KeyDeclined), NextState: core.StateIdle, NextData: data}
	}
	return Result{
		Reply:     locale.T(data.Language, locale.KeyAskName),
		NextState: core.StateAskingName,
		NextData:  core.SessionData{Language: data.Language},
	}
}

// stateLabel renders a conversation state for the status reply.
func stateLabel(state core.ConversationState) string {
	switch state {
	case core.StateAskingLanguage:
		return "choosing a language"
	case core.StateIdle:
		return "idle"
	case core.StateAskingName:
		return "collecting your name"
	case core.StateAskingEmail:
		return "collecting your email"
	case core.StateAskingBudget:
		return "collecting your budget"
	case core.StateAskingProjectDetails:
		return "collecting project details"
	case core.StateAskingProjectConfirmation:
		return "confirming a project inquiry"
	default:
		return state.String()
	}
}
