package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	workflowOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "projectdesk_workflow_operations_total",
		Help: "Count of workflow operations by operation and result",
	}, []string{"operation", "result"})

	auditEntries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "projectdesk_audit_entries_total",
		Help: "Count of audit log entries by action",
	}, []string{"action"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "projectdesk_login_attempts_total",
		Help: "Count of login attempts by result",
	}, []string{"result"})

	activeEntities = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "projectdesk_entities",
		Help: "Number of stored entities by kind",
	}, []string{"kind"})
)

// Result labels for ObserveWorkflow.
const (
	ResultOK       = "ok"
	ResultDenied   = "denied"
	ResultRejected = "rejected"
)

// ObserveWorkflow increments the workflow operation counter.
func ObserveWorkflow(operation, result string) {
	workflowOperations.WithLabelValues(operation, result).Inc()
}

// ObserveAuditEntry increments the audit entry counter for an action.
func ObserveAuditEntry(action string) {
	auditEntries.WithLabelValues(action).Inc()
}

// ObserveLogin records a login attempt with a result label.
func ObserveLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

// SetEntityCount sets the stored-entity gauge for a kind.
func SetEntityCount(kind string, count int) {
	if count < 0 {
		count = 0
	}
	activeEntities.WithLabelValues(kind).Set(float64(count))
}
