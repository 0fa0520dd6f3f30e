// Package audit keeps the append-only history of workflow actions.
package audit

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourorg/projectdesk/internal/observability/metrics"
)

// Entry is one immutable audit record.
type Entry struct {
	ActorID   string
	Timestamp time.Time
	Action    string
	EntityID  string
	Details   string
}

// Log is an in-memory append-only audit log. Entries are never removed or
// mutated; order is append order with wall-clock timestamps.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	log     *zap.SugaredLogger
}

// NewLog constructs an empty audit log.
func NewLog(log *zap.SugaredLogger) *Log {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Log{log: log}
}

// Record appends an entry stamped with the current time.
func (l *Log) Record(actorID, action, entityID, details string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, Entry{
		ActorID:   actorID,
		Timestamp: time.Now(),
		Action:    action,
		EntityID:  entityID,
		Details:   details,
	})
	metrics.ObserveAuditEntry(action)
	l.log.Debugw("audit", "actor", actorID, "action", action, "entity", entityID, "details", details)
}

// EntriesFor returns, in append order, every entry whose entity field
// contains the given substring. Substring match is the contract, not a bug:
// callers filter histories by partial ids.
func (l *Log) EntriesFor(entityIDSubstring string) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if strings.Contains(e.EntityID, entityIDSubstring) {
			out = append(out, e)
		}
	}
	return out
}

// AllEntries returns a snapshot of every entry in append order.
func (l *Log) AllEntries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry(nil), l.entries...)
}
