// Package service contains the workflow orchestration layer. Every
// operation follows the same shape: permission or ownership check, entity
// precondition, state mutation, persist, audit. Business-rule violations
// are returned as sentinel-wrapped errors, never panics.
package service

import (
	"errors"

	"go.opentelemetry.io/otel"

	"github.com/yourorg/projectdesk/internal/domain"
	"github.com/yourorg/projectdesk/internal/observability/metrics"
)

var tracer = otel.Tracer("projectdesk/service")

// observe maps an operation outcome onto the workflow metric labels.
func observe(operation string, err error) {
	switch {
	case err == nil:
		metrics.ObserveWorkflow(operation, metrics.ResultOK)
	case errors.Is(err, domain.ErrPermissionDenied), errors.Is(err, domain.ErrNoActiveSession):
		metrics.ObserveWorkflow(operation, metrics.ResultDenied)
	default:
		metrics.ObserveWorkflow(operation, metrics.ResultRejected)
	}
}
