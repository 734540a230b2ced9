// Package leadbot provides a high-level façade over the dialogue engine and
// its services (session store, metrics, external responder) for running a
// lead-qualification chatbot. Most applications interact with this package
// by:
//  1. Creating a Bot via New() (optionally overriding default in-memory services)
//  2. Calling Chat() once per inbound user message
//  3. Reacting to completed leads through the OnLeadCompleted hook
//
// The façade delegates turn evaluation to engine.Engine while keeping setup
// and usage ergonomics concise. All defaults are safe for local development
// and testing; production deployments typically supply a configured external
// responder and a structured logger.
package leadbot

import (
	"context"
	"time"

	"github.com/agencyos/leadbot/core"
	"github.com/agencyos/leadbot/engine"
	"github.com/agencyos/leadbot/logging"
	"github.com/agencyos/leadbot/metrics"
	"github.com/agencyos/leadbot/responder"
	"github.com/agencyos/leadbot/session"
)

// Options configures the Bot instance.
type Options struct {
	// SessionStore holds conversations (defaults to an in-memory store with
	// SessionTTL expiry).
	SessionStore core.SessionStore

	// SessionTTL is the idle duration after which a session may be purged.
	// Only used when SessionStore is nil.
	SessionTTL time.Duration

	// Metrics accumulates usage counters (defaults to a fresh aggregator).
	Metrics *metrics.Aggregator

	// Responder handles free-form messages no intent matches. Nil disables
	// the escape hatch.
	Responder responder.Responder

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// OnLeadCompleted fires on exactly the transition that finalizes a lead.
	// It receives the session id and the finalized data; a non-empty return
	// value is appended to the reply text (typically a report link).
	OnLeadCompleted func(sessionID string, data core.SessionData) string
}

// Bot is the high-level façade aggregating the dialogue engine and services.
type Bot struct {
	opts   Options
	engine *engine.Engine
}

// New creates a new Bot instance with optional overrides. Any unset service
// is initialized with an in-memory implementation.
func New(optFns ...func(o *Options)) *Bot {
	opts := Options{
		SessionTTL: time.Hour,
		Metrics:    metrics.NewAggregator(),
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.SessionStore == nil {
		opts.SessionStore = session.NewInMemoryStore(opts.SessionTTL)
	}

	eng := engine.New(func(o *engine.Options) {
		o.Metrics = opts.Metrics
		o.Responder = opts.Responder
		o.Logger = opts.Logger
	})

	return &Bot{opts: opts, engine: eng}
}

// Turn is the outcome of one inbound message.
type Turn struct {
	SessionID     string
	Reply         string
	LeadCompleted bool
}

// Chat resolves sessionID to a session (creating one when the id is empty or
// unknown), evaluates the message and writes the resulting state, data and
// history back through the store.
//
// Operations issued for a single turn are ordered but not atomic as a unit:
// two concurrent turns against the same session id interleave their read and
// write phases, last write wins on state and data.
func (b *Bot) Chat(ctx context.Context, sessionID, message string) Turn {
	store := b.opts.SessionStore
	if sessionID == "" {
		sessionID = store.Create()
	} else {
		store.Ensure(sessionID)
	}

	state := store.GetState(sessionID)
	data := store.GetData(sessionID)
	history, _ := store.GetHistory(sessionID)

	res := b.engine.Evaluate(ctx, state, message, data, history)

	store.SetState(sessionID, res.NextState)
	store.SetData(sessionID, res.NextData)

	reply := res.Reply
	if res.LeadCompleted && b.opts.OnLeadCompleted != nil {
		if extra := b.opts.OnLeadCompleted(sessionID, res.NextData.Clone()); extra != "" {
			reply += " " + extra
		}
	}

	store.AppendMessage(sessionID, core.RoleUser, message)
	store.AppendMessage(sessionID, core.RoleBot, reply)

	b.opts.Logger.Debug("turn evaluated",
		"session_id", sessionID,
		"state", state.String(),
		"next_state", res.NextState.String(),
		"lead_completed", res.LeadCompleted,
	)

	return Turn{SessionID: sessionID, Reply: reply, LeadCompleted: res.LeadCompleted}
}

// Store exposes the underlying session store, e.g. to drive the TTL janitor.
func (b *Bot) Store() core.SessionStore { return b.opts.SessionStore }

// Metrics exposes the usage aggregator for admin snapshots.
func (b *Bot) Metrics() *metrics.Aggregator { return b.opts.Metrics }
