package view

import (
	"github.com/yourorg/projectdesk/internal/audit"
)

// printHistory renders the audit trail of one entity, if any.
func printHistory(console *Console, log *audit.Log, entityID string) {
	entries := log.EntriesFor(entityID)
	if len(entries) == 0 {
		return
	}
	console.Separator()
	console.Println("History:")
	for _, e := range entries {
		console.Printf("[%s] %s %s by %s: %s\n",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Action, e.EntityID, e.ActorID, e.Details)
	}
}
