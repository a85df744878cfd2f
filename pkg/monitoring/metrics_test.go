package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// The collector is built directly so these tests stay clear of the global
// registry; testutil reads the counters without registration.

func TestRecordAuthzDecision(t *testing.T) {
	m := &MetricsCollector{serviceName: "test"}

	m.RecordAuthzDecision("appointment.delete", "patient", false)
	m.RecordAuthzDecision("appointment.delete", "patient", false)
	m.RecordAuthzDecision("appointment.accept", "clinician", true)

	assert.Equal(t, float64(2), testutil.ToFloat64(
		authzDecisionsTotal.WithLabelValues("appointment.delete", "patient", "false", "test")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		authzDecisionsTotal.WithLabelValues("appointment.accept", "clinician", "true", "test")))
}

func TestRecordAuditEvent(t *testing.T) {
	m := &MetricsCollector{serviceName: "test"}

	m.RecordAuditEvent("delete_account", true)
	m.RecordAuditEvent("login", false)

	assert.Equal(t, float64(1), testutil.ToFloat64(
		auditEventsTotal.WithLabelValues("delete_account", "true", "test")))
	assert.Equal(t, float64(1), testutil.ToFloat64(
		auditEventsTotal.WithLabelValues("login", "false", "test")))
}
