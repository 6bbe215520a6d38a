// Package audit keeps the append-only trail of security-relevant events.
// Every login attempt, logout and permissioned action lands here. Appends
// never fail from the caller's perspective: the audit layer must not block
// the action it is auditing, so persistence problems are logged and
// swallowed.
package audit

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/dvonne2/vitalvida-command-center-elite/internal/ids"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/obs"
	"github.com/dvonne2/vitalvida-command-center-elite/internal/store"
)

// ActorUnknown is recorded when no authenticated actor is attributable.
const ActorUnknown = "Unknown"

// originPlaceholder stands in when the request origin was not captured.
const originPlaceholder = "Auto-logged"

// logsKey is the durable storage slot holding the serialized trail.
const logsKey = "audit_logs"

// Entry is one immutable record. Once appended it is never modified or
// deleted; retention is an external concern.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Actor     string    `json:"actor"`
	Action    string    `json:"action"`
	Panel     string    `json:"panel,omitempty"`
	Origin    string    `json:"origin"`
}

// Event is the caller-supplied part of an entry. Timestamp, ID and origin
// are assigned by the log at append time.
type Event struct {
	Action string
	Panel  string
	Actor  string
}

// Publisher receives each appended entry, e.g. for live streaming.
type Publisher interface {
	Publish(Entry)
}

// Log is the in-memory sequence plus its durable mirror.
type Log struct {
	mu      sync.Mutex
	kv      store.KV
	pub     Publisher
	now     func() time.Time
	entries []Entry
}

// Option configures a Log.
type Option func(*Log)

// WithPublisher fans appended entries out to the given publisher.
func WithPublisher(p Publisher) Option {
	return func(l *Log) { l.pub = p }
}

// WithClock overrides the time source; test use only.
func WithClock(fn func() time.Time) Option {
	return func(l *Log) {
		if fn != nil {
			l.now = fn
		}
	}
}

func New(kv store.KV, opts ...Option) *Log {
	l := &Log{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load seeds the in-memory sequence from durable storage. Corrupt data is
// discarded; startup never fails because of it.
func (l *Log) Load(ctx context.Context) {
	data, ok, err := l.kv.Get(ctx, logsKey)
	if err != nil {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "audit trail read failed", "error": err.Error()})
		return
	}
	if !ok {
		return
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "discarding corrupt audit trail"})
		return
	}
	l.mu.Lock()
	l.entries = entries
	l.mu.Unlock()
}

// Append records one event. The in-memory sequence is updated synchronously
// before Append returns, so a permission check in the same UI event sees a
// consistent trail. The durable mirror and stream fan-out are best effort.
func (l *Log) Append(ctx context.Context, ev Event) {
	entry := Entry{
		ID:        ids.New(),
		Timestamp: l.now().UTC(),
		Actor:     strings.TrimSpace(ev.Actor),
		Action:    ev.Action,
		Panel:     ev.Panel,
		Origin:    originFromContext(ctx),
	}
	if entry.Actor == "" {
		entry.Actor = ActorUnknown
	}

	l.mu.Lock()
	l.entries = append(l.entries, entry)
	snapshot := make([]Entry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	obs.CountAuditEntry()
	l.emit(entry)
	l.persist(ctx, snapshot)
	if l.pub != nil {
		l.pub.Publish(entry)
	}
}

// Entries returns a copy of the trail in append order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len reports the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Log) emit(e Entry) {
	obs.LogEvent(map[string]any{
		"ts":     e.Timestamp.Format(time.RFC3339Nano),
		"type":   "audit",
		"id":     e.ID,
		"actor":  e.Actor,
		"action": e.Action,
		"panel":  e.Panel,
		"origin": e.Origin,
	})
}

func (l *Log) persist(ctx context.Context, snapshot []Entry) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "audit marshal failed", "error": err.Error()})
		return
	}
	if err := l.kv.Set(ctx, logsKey, data); err != nil {
		obs.LogEvent(map[string]any{"level": "warn", "msg": "audit persist failed", "error": err.Error()})
	}
}

type ctxKey string

const originKey ctxKey = "audit_origin"

// WithOrigin attaches the request origin (client address) to the context so
// entries appended further down the call chain carry it.
func WithOrigin(ctx context.Context, origin string) context.Context {
	origin = strings.TrimSpace(origin)
	if origin == "" {
		return ctx
	}
	return context.WithValue(ctx, originKey, origin)
}

func originFromContext(ctx context.Context) string {
	if ctx != nil {
		if v, ok := ctx.Value(originKey).(string); ok && v != "" {
			return v
		}
	}
	return originPlaceholder
}
