package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agencyos/leadbot/core"
	"github.com/agencyos/leadbot/metrics"
	"github.com/agencyos/leadbot/responder"
)

func newTestEngine(optFns ...func(o *Options)) (*Engine, *metrics.Aggregator) {
	agg := metrics.NewAggregator()
	fns := append([]func(o *Options){func(o *Options) { o.Metrics = agg }}, optFns...)
	return New(fns...), agg
}

func eval(e *Engine, state core.ConversationState, msg string, data core.SessionData) Result {
	return e.Evaluate(context.Background(), state, msg, data, nil)
}

func defaults() core.SessionData { return core.NewSessionData() }

func TestResetFromAnyState(t *testing.T) {
	e, _ := newTestEngine()
	states := []core.ConversationState{
		core.StateAskingLanguage, core.StateIdle, core.StateAskingName,
		core.StateAskingEmail, core.StateAskingBudget,
		core.StateAskingProjectDetails, core.StateAskingProjectConfirmation,
	}
	for _, state := range states {
		for _, msg := range []string{"reset", "RESET", "  Reset  ", "cancel", " CANCEL "} {
			data := core.SessionData{Language: "fr", Name: "Jean", DetectedKeywords: []string{"blog"}}
			res := eval(e, state, msg, data)
			assert.Equal(t, core.StateAskingLanguage, res.NextState, "state %s msg %q", state, msg)
			assert.Equal(t, core.NewSessionData(), res.NextData, "state %s msg %q", state, msg)
			assert.False(t, res.LeadCompleted)
		}
	}
}

func TestStatusLeavesStateAndDataAlone(t *testing.T) {
	e, _ := newTestEngine()
	data := core.SessionData{Language: "en", Name: "John"}
	res := eval(e, core.StateAskingEmail, "status", data)
	assert.Equal(t, core.StateAskingEmail, res.NextState)
	assert.Equal(t, "John", res.NextData.Name)
	assert.Contains(t, res.Reply, "collecting your email")
}

func TestAskingName_RejectsNonName(t *testing.T) {
	e, _ := newTestEngine()
	res := eval(e, core.StateAskingName, "User123", defaults())
	assert.Equal(t, core.StateAskingName, res.NextState)
	assert.Empty(t, res.NextData.Name)
}

func TestAskingName_AcceptsAccentsHyphensApostrophes(t *testing.T) {
	e, _ := newTestEngine()
	for _, name := range []string{"John", "Anne-Marie", "O'Brien", "Zoë", "Jean Paul"} {
		res := eval(e, core.StateAskingName, name, defaults())
		require.Equal(t, core.StateAskingEmail, res.NextState, "name %q", name)
		assert.Equal(t, name, res.NextData.Name)
	}
	for _, bad := range []string{"", "J", "   ", "a@b", "12"} {
		res := eval(e, core.StateAskingName, bad, defaults())
		assert.Equal(t, core.StateAskingName, res.NextState, "input %q", bad)
	}
}

func TestFullInquiryFlow(t *testing.T) {
	e, _ := newTestEngine()

	res := eval(e, core.StateIdle, "I want a website", defaults())
	require.Equal(t, core.StateAskingName, res.NextState)
	assert.Contains(t, res.Reply, "name")

	res = eval(e, res.NextState, "John", res.NextData)
	require.Equal(t, core.StateAskingEmail, res.NextState)
	assert.Equal(t, "John", res.NextData.Name)
	assert.Contains(t, res.Reply, "John")
	assert.Contains(t, res.Reply, "email")

	res = eval(e, res.NextState, "john@test.com", res.NextData)
	require.Equal(t, core.StateAskingBudget, res.NextState)
	assert.Equal(t, "john@test.com", res.NextData.Email)
	assert.Contains(t, res.Reply, "budget")

	res = eval(e, res.NextState, "5000", res.NextData)
	require.Equal(t, core.StateAskingProjectDetails, res.NextState)
	assert.Equal(t, "5000", res.NextData.Budget)
	assert.Contains(t, res.Reply, "requirements")
	assert.False(t, res.LeadCompleted)

	res = eval(e, res.NextState, "I need a blog", res.NextData)
	require.Equal(t, core.StateIdle, res.NextState)
	assert.Contains(t, res.Reply, "5000")
	assert.Contains(t, res.Reply, "REPORT GENERATED")
	assert.Contains(t, res.NextData.DetectedKeywords, "blog")
	assert.True(t, res.LeadCompleted)
}

func TestSummaryPlaceholders(t *testing.T) {
	e, _ := newTestEngine()
	res := eval(e, core.StateAskingProjectDetails, "just something simple", defaults())
	assert.Contains(t, res.Reply, "N/A")
	assert.Contains(t, res.Reply, "GENERAL INQUIRY")
	assert.True(t, res.LeadCompleted)
}

func TestInterruption_PricingDuringAskingName(t *testing.T) {
	e, agg := newTestEngine()
	data := core.SessionData{Language: "en"}
	res := eval(e, core.StateAskingName, "what is the price?", data)
	assert.Equal(t, core.StateAskingName, res.NextState)
	assert.Contains(t, res.Reply, "$1000")
	assert.Contains(t, res.Reply, "name")
	assert.Equal(t, uint64(1), agg.Snapshot().IntentUsage["Pricing"])
}

func TestInterruption_ContactSuppressedWhileAskingEmail(t *testing.T) {
	e, _ := newTestEngine()
	res := eval(e, core.StateAskingEmail, "contact", defaults())
	// Falls through to email validation instead of answering with contact info.
	assert.Equal(t, core.StateAskingEmail, res.NextState)
	assert.NotContains(t, res.Reply, "hello@agencyos.dev")

	res = eval(e, core.StateAskingBudget, "how do I contact you?", defaults())
	assert.Equal(t, core.StateAskingBudget, res.NextState)
	assert.Contains(t, res.Reply, "hello@agencyos.dev")
	assert.Contains(t, res.Reply, "budget")
}

func TestKeywordAccumulationAcrossTurns(t *testing.T) {
	e, _ := newTestEngine()
	res := eval(e, core.StateIdle, "I need a Rust backend API", defaults())
	res = e.Evaluate(context.Background(), res.NextState, "and also Python", res.NextData, nil)
	res = e.Evaluate(context.Background(), res.NextState, "did I mention Rust?", res.NextData, nil)
	assert.Equal(t, []string{"rust", "backend", "api", "python"}, res.NextData.DetectedKeywords)
}

func TestMetrics_PricingTurn(t *testing.T) {
	e, agg := newTestEngine()
	eval(e, core.StateIdle, "how much does it cost?", defaults())
	snap := agg.Snapshot()
	assert.Equal(t, uint64(1), snap.IntentUsage["Pricing"])
	assert.Equal(t, uint64(1), snap.LanguageUsage["en"])
}

func TestLanguageInference(t *testing.T) {
	e, _ := newTestEngine()

	res := eval(e, core.StateIdle, "hola", defaults())
	assert.Equal(t, "es", res.NextData.Language)
	assert.Contains(t, res.Reply, "Hola")

	res = eval(e, core.StateIdle, "bonjour", defaults())
	assert.Equal(t, "fr", res.NextData.Language)

	res = eval(e, core.StateIdle, "cześć", defaults())
	assert.Equal(t, "pl", res.NextData.Language)
	assert.Contains(t, res.Reply, "Cześć")
}

func TestPolishWebsiteRequest(t *testing.T) {
	e, _ := newTestEngine()
	res := eval(e, core.StateIdle, "chcę nową stronę", defaults())
	require.Equal(t, core.StateAskingName, res.NextState)
	assert.Equal(t, "pl", res.NextData.Language)
	assert.Contains(t, res.Reply, "Chętnie pomożemy")
}

func TestAskingLanguage_Selection(t *testing.T) {
	e, _ := newTestEngine()

	res := eval(e, core.StateAskingLanguage, "fr", defaults())
	assert.Equal(t, core.StateIdle, res.NextState)
	assert.Equal(t, "fr", res.NextData.Language)
	assert.Contains(t, res.Reply, "Bonjour")

	res = eval(e, core.StateAskingLanguage, "English", defaults())
	assert.Equal(t, core.StateIdle, res.NextState)
	assert.Equal(t, "en", res.NextData.Language)

	// A greeting reveals the language without naming it.
	res = eval(e, core.StateAskingLanguage, "hola!", defaults())
	assert.Equal(t, core.StateIdle, res.NextState)
	assert.Equal(t, "es", res.NextData.Language)

	// Nothing recognizable keeps asking, in every supported language.
	res = eval(e, core.StateAskingLanguage, "qwerty", defaults())
	assert.Equal(t, core.StateAskingLanguage, res.NextState)
	assert.Contains(t, res.Reply, "Français (fr)")
	assert.Contains(t, res.Reply, "Wybierz")
}

func TestProjectConfirmation(t *testing.T) {
	e, _ := newTestEngine()

	data := core.SessionData{Language: "en", DetectedKeywords: []string{"shop"}}
	res := eval(e, core.StateAskingProjectConfirmation, "yes please", data)
	assert.Equal(t, core.StateAskingName, res.NextState)
	assert.Empty(t, res.NextData.DetectedKeywords, "confirmation starts a clean inquiry")
	assert.Equal(t, "en", res.NextData.Language)
	assert.Contains(t, res.Reply, "name")

	res = eval(e, core.StateAskingProjectConfirmation, "tak", core.SessionData{Language: "pl"})
	assert.Equal(t, core.StateAskingName, res.NextState)

	res = eval(e, core.StateAskingProjectConfirmation, "not right now", defaults())
	assert.Equal(t, core.StateIdle, res.NextState)

	// "si" must match as a token, not as a substring of an unrelated word.
	res = eval(e, core.StateAskingProjectConfirmation, "impossible", defaults())
	assert.Equal(t, core.StateIdle, res.NextState)
}

func TestIdle_CannedIntents(t *testing.T) {
	e, _ := newTestEngine()

	res := eval(e, core.StateIdle, "hello there", defaults())
	assert.Equal(t, core.StateIdle, res.NextState)
	assert.Contains(t, res.Reply, "Hello")

	res = eval(e, core.StateIdle, "what services do you offer?", defaults())
	assert.Equal(t, core.StateIdle, res.NextState)
	assert.Contains(t, res.Reply, "Web Development")

	res = eval(e, core.StateIdle, "help", defaults())
	assert.Contains(t, res.Reply, "pricing, contact info")

	res = eval(e, core.StateIdle, "how much?", defaults())
	assert.Equal(t, core.StateAskingProjectConfirmation, res.NextState)
	assert.Contains(t, res.Reply, "start a project inquiry")
}

func TestIdle_UnknownDelegatesToResponder(t *testing.T) {
	mock := responder.NewMock()
	mock.AddResponse("tell me a joke", "Why did the server cross the road?")
	e, agg := newTestEngine(func(o *Options) { o.Responder = mock })

	res := eval(e, core.StateIdle, "tell me a joke", defaults())
	assert.Equal(t, core.StateIdle, res.NextState)
	assert.Equal(t, "Why did the server cross the road?", res.Reply)
	assert.Equal(t, 1, mock.Calls())
	assert.Equal(t, uint64(1), agg.Snapshot().IntentUsage["Unknown"])
}

func TestIdle_ResponderFailureFallsBack(t *testing.T) {
	mock := responder.NewMock()
	mock.Fail(errors.New("boom"))
	e, _ := newTestEngine(func(o *Options) { o.Responder = mock })

	res := eval(e, core.StateIdle, "tell me a joke", defaults())
	assert.Equal(t, core.StateIdle, res.NextState)
	assert.Contains(t, res.Reply, "didn't quite catch that")
}

func TestIdle_NoResponderFallsBack(t *testing.T) {
	e, _ := newTestEngine()
	res := eval(e, core.StateIdle, "tell me a joke", defaults())
	assert.Contains(t, res.Reply, "didn't quite catch that")
}

func TestResponderReceivesBoundedHistory(t *testing.T) {
	var seen []core.Message
	capture := captureResponder{out: &seen}
	e, _ := newTestEngine(func(o *Options) { o.Responder = capture })

	history := make([]core.Message, 0, 20)
	for i := 0; i < 20; i++ {
		history = append(history, core.Message{Role: core.RoleUser, Content: "older"})
	}
	e.Evaluate(context.Background(), core.StateIdle, "tell me a joke", defaults(), history)

	require.Len(t, seen, responder.ContextWindow)
	assert.Equal(t, "tell me a joke", seen[len(seen)-1].Content)
}

type captureResponder struct{ out *[]core.Message }

func (c captureResponder) Complete(_ context.Context, history []core.Message) (string, error) {
	*c.out = append([]core.Message{}, history...)
	return "ok", nil
}

func TestEvaluateDoesNotMutateInputData(t *testing.T) {
	e, _ := newTestEngine()
	data := core.SessionData{Language: "en", DetectedKeywords: []string{"blog"}}
	eval(e, core.StateIdle, "a python shop please", data)
	assert.Equal(t, []string{"blog"}, data.DetectedKeywords)
}
