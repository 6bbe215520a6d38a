package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/obs"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/store"
)

func TestAppendAssignsTimestampAndActorFallback(t *testing.T) {
	kv := store.NewMemory()
	trail := New(kv)

	before := time.Now().UTC()
	trail.Append(context.Background(), Event{Action: "Unauthorized login attempt: ghost@nowhere.ng"})

	entries := trail.Entries()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Actor != ActorUnknown {
		t.Fatalf("expected actor %q, got %q", ActorUnknown, e.Actor)
	}
	if e.Timestamp.Before(before) {
		t.Fatalf("timestamp not assigned at append time: %v", e.Timestamp)
	}
	if e.ID == "" {
		t.Fatalf("expected entry id")
	}
	if e.Origin != "Auto-logged" {
		t.Fatalf("expected origin placeholder, got %q", e.Origin)
	}
}

func TestAppendUsesContextOrigin(t *testing.T) {
	trail := New(store.NewMemory())
	ctx := WithOrigin(context.Background(), "10.1.2.3")
	trail.Append(ctx, Event{Action: "Successful login: admin@vitalvida.ng", Actor: "admin@vitalvida.ng"})

	e := trail.Entries()[0]
	if e.Origin != "10.1.2.3" {
		t.Fatalf("expected context origin, got %q", e.Origin)
	}
	if e.Actor != "admin@vitalvida.ng" {
		t.Fatalf("unexpected actor: %q", e.Actor)
	}
}

func TestEntriesAreOrderedAndCopied(t *testing.T) {
	trail := New(store.NewMemory())
	ctx := context.Background()
	for _, action := range []string{"first", "second", "third"} {
		trail.Append(ctx, Event{Action: action, Actor: "fc"})
	}

	entries := trail.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i].Timestamp.Before(entries[i-1].Timestamp) {
			t.Fatalf("entries out of order at %d", i)
		}
		if entries[i].ID <= entries[i-1].ID {
			t.Fatalf("ids not sortable at %d: %s <= %s", i, entries[i].ID, entries[i-1].ID)
		}
	}

	// Mutating the returned slice must not touch the log.
	entries[0].Action = "tampered"
	if trail.Entries()[0].Action != "first" {
		t.Fatalf("log entries must be immutable to callers")
	}
}

func TestAppendPersistsAndLoadRestores(t *testing.T) {
	kv := store.NewMemory()
	trail := New(kv)
	ctx := context.Background()
	trail.Append(ctx, Event{Action: "Logout: admin@vitalvida.ng", Actor: "admin@vitalvida.ng", Panel: "audit"})

	data, ok, err := kv.Get(ctx, "audit_logs")
	if err != nil || !ok {
		t.Fatalf("expected persisted trail: ok=%v err=%v", ok, err)
	}
	var persisted []Entry
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("persisted trail not valid JSON: %v", err)
	}
	if len(persisted) != 1 || persisted[0].Panel != "audit" {
		t.Fatalf("unexpected persisted trail: %+v", persisted)
	}

	restored := New(kv)
	restored.Load(ctx)
	if restored.Len() != 1 {
		t.Fatalf("expected restored trail, got %d entries", restored.Len())
	}
}

func TestLoadDiscardsCorruptTrail(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Set(context.Background(), "audit_logs", []byte("{not json"))
	trail := New(kv)
	trail.Load(context.Background())
	if trail.Len() != 0 {
		t.Fatalf("corrupt trail must be discarded")
	}
}

type failingKV struct{ store.KV }

func (f failingKV) Set(ctx context.Context, key string, value []byte) error {
	return errors.New("disk full")
}

func TestAppendSwallowsPersistFailure(t *testing.T) {
	logger := obs.Logger()
	original := logger.Writer()
	logger.SetFlags(0)
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(original)

	trail := New(failingKV{store.NewMemory()})
	trail.Append(context.Background(), Event{Action: "Failed login attempt: admin@vitalvida.ng"})

	if trail.Len() != 1 {
		t.Fatalf("in-memory append must survive persistence failure")
	}
	if !bytes.Contains(buf.Bytes(), []byte("audit persist failed")) {
		t.Fatalf("expected persist failure to be logged, got: %s", buf.String())
	}
}

type capturingPublisher struct{ got []Entry }

func (c *capturingPublisher) Publish(e Entry) { c.got = append(c.got, e) }

func TestAppendFansOutToPublisher(t *testing.T) {
	pub := &capturingPublisher{}
	trail := New(store.NewMemory(), WithPublisher(pub))
	trail.Append(context.Background(), Event{Action: "Resolved alert", Actor: "fc", Panel: "dangote"})
	if len(pub.got) != 1 || pub.got[0].Panel != "dangote" {
		t.Fatalf("publisher did not receive entry: %+v", pub.got)
	}
}
