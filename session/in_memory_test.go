package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/agencyos/leadbot/core"
	"github.com/agencyos/leadbot/logging"
)

// Interface compliance (compile-time assertion)
var _ core.SessionStore = (*InMemoryStore)(nil)

func TestInMemoryStore_BasicFlow(t *testing.T) {
	store := NewInMemoryStore(time.Minute)

	id := store.Create()
	require.NotEmpty(t, id)

	n := store.AppendMessage(id, core.RoleUser, "hello")
	assert.Equal(t, 1, n)

	history, ok := store.GetHistory(id)
	require.True(t, ok)
	require.Len(t, history, 1)
	assert.Equal(t, core.RoleUser, history[0].Role)
	assert.Equal(t, "hello", history[0].Content)

	assert.True(t, store.Remove(id))
	assert.False(t, store.Remove(id))
}

func TestInMemoryStore_CreateReturnsFreshIDs(t *testing.T) {
	store := NewInMemoryStore(time.Minute)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := store.Create()
		require.False(t, seen[id], "Create returned an id already present")
		seen[id] = true
	}
	assert.Equal(t, 100, store.Len())
	assert.ElementsMatch(t, keys(seen), store.SessionIDs())
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestInMemoryStore_EnsureIsIdempotent(t *testing.T) {
	store := NewInMemoryStore(time.Minute)

	store.Ensure("cookie-42")
	store.SetState("cookie-42", core.StateAskingEmail)

	// A second Ensure must not reset the existing session.
	store.Ensure("cookie-42")
	assert.Equal(t, core.StateAskingEmail, store.GetState("cookie-42"))
	assert.Equal(t, 1, store.Len())
}

func TestInMemoryStore_AppendCreatesSilently(t *testing.T) {
	store := NewInMemoryStore(time.Minute)
	n := store.AppendMessage("ghost", core.RoleBot, "materialized")
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, store.Len())
}

func TestInMemoryStore_MissSemantics(t *testing.T) {
	store := NewInMemoryStore(time.Minute)

	// Getters fall back to defaults.
	assert.Equal(t, core.StateIdle, store.GetState("missing"))
	assert.Equal(t, core.SessionData{}, store.GetData("missing"))

	// Setters are silent no-ops: they must not create the session.
	store.SetState("missing", core.StateAskingName)
	store.SetData("missing", core.SessionData{Name: "John"})
	assert.Equal(t, 0, store.Len())
}

func TestInMemoryStore_NewSessionStartsAskingLanguage(t *testing.T) {
	store := NewInMemoryStore(time.Minute)
	id := store.Create()
	assert.Equal(t, core.StateAskingLanguage, store.GetState(id))
	assert.Equal(t, core.DefaultLanguage, store.GetData(id).Language)
}

func TestInMemoryStore_HistoryAbsentVsEmpty(t *testing.T) {
	store := NewInMemoryStore(time.Minute)

	_, ok := store.GetHistory("never-existed")
	assert.False(t, ok)

	store.Ensure("fresh")
	history, ok := store.GetHistory("fresh")
	assert.True(t, ok)
	assert.Empty(t, history)
}

func TestInMemoryStore_HistoryCopyIsIndependent(t *testing.T) {
	store := NewInMemoryStore(time.Minute)
	id := store.Create()
	store.AppendMessage(id, core.RoleUser, "original")

	history, _ := store.GetHistory(id)
	history[0].Content = "tampered"

	fresh, _ := store.GetHistory(id)
	assert.Equal(t, "original", fresh[0].Content)
}

func TestInMemoryStore_DataCopyIsIndependent(t *testing.T) {
	store := NewInMemoryStore(time.Minute)
	id := store.Create()
	store.SetData(id, core.SessionData{Language: "en", DetectedKeywords: []string{"blog"}})

	data := store.GetData(id)
	data.Name = "tampered"
	data.DetectedKeywords[0] = "tampered"

	fresh := store.GetData(id)
	assert.Empty(t, fresh.Name)
	assert.Equal(t, []string{"blog"}, fresh.DetectedKeywords)
}

func TestInMemoryStore_PurgeExpired(t *testing.T) {
	ttl := 50 * time.Millisecond
	store := NewInMemoryStore(ttl)

	stale := store.Create()

	// Nothing has aged yet: purging mutates nothing and reports 0.
	assert.Equal(t, 0, store.PurgeExpired(time.Now()))
	assert.Equal(t, 1, store.Len())

	time.Sleep(ttl + 20*time.Millisecond)

	fresh := store.Create()
	store.SetData(fresh, core.SessionData{Language: "pl", Name: "Ola"})
	store.SetState(fresh, core.StateAskingEmail)
	store.AppendMessage(fresh, core.RoleUser, "keep me")
	wantData := store.GetData(fresh)

	removed := store.PurgeExpired(time.Now())
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Len())
	assert.False(t, store.Remove(stale), "stale session should already be gone")

	// The survivor is untouched.
	assert.Equal(t, wantData, store.GetData(fresh))
	assert.Equal(t, core.StateAskingEmail, store.GetState(fresh))
	history, ok := store.GetHistory(fresh)
	assert.True(t, ok)
	assert.Len(t, history, 1)
}

func TestInMemoryStore_MutationsRefreshLastActive(t *testing.T) {
	ttl := 30 * time.Millisecond
	store := NewInMemoryStore(ttl)
	id := store.Create()

	// Keep the session warm past its original TTL window via mutations.
	for i := 0; i < 3; i++ {
		time.Sleep(20 * time.Millisecond)
		store.AppendMessage(id, core.RoleUser, "still here")
	}
	assert.Equal(t, 0, store.PurgeExpired(time.Now()))
	assert.Equal(t, 1, store.Len())
}

func TestRunJanitor_PurgesAndStops(t *testing.T) {
	store := NewInMemoryStore(time.Nanosecond)
	store.Create()
	store.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		RunJanitor(ctx, store, 5*time.Millisecond, logging.NoOpLogger{})
		close(done)
	}()

	assert.Eventually(t, func() bool { return store.Len() == 0 },
		time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop after cancellation")
	}
}

// Property: the store behaves like a plain map keyed by session id under any
// interleaving of Ensure / Create / Remove.
func TestInMemoryStore_MapModel(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		store := NewInMemoryStore(time.Hour)
		model := map[string]bool{}

		ops := rapid.IntRange(1, 50).Draw(r, "ops")
		for i := 0; i < ops; i++ {
			switch rapid.IntRange(0, 2).Draw(r, "op") {
			case 0:
				id := rapid.StringMatching(`sess-[a-c]{1,2}`).Draw(r, "ensureID")
				store.Ensure(id)
				model[id] = true
			case 1:
				id := store.Create()
				model[id] = true
			case 2:
				id := rapid.StringMatching(`sess-[a-c]{1,2}`).Draw(r, "removeID")
				existed := store.Remove(id)
				if existed != model[id] {
					r.Fatalf("Remove(%q) = %v, model says %v", id, existed, model[id])
				}
				delete(model, id)
			}
		}

		if store.Len() != len(model) {
			r.Fatalf("store has %d sessions, model has %d", store.Len(), len(model))
		}
	})
}
