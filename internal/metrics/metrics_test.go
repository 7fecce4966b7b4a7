package metrics

import (
	"errors"
	"testing"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveIssues(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveIssues([]model.IntegrityIssue{
		{Type: model.IssueOrderWithoutInvoice, Severity: model.SeverityHigh},
		{Type: model.IssueOrderWithoutInvoice, Severity: model.SeverityHigh},
		{Type: model.IssueOrphanPOD, Severity: model.SeverityMedium},
	})

	assert.Equal(t, 2.0, testutil.ToFloat64(m.issuesDetected.WithLabelValues("order_without_invoice", "high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.issuesDetected.WithLabelValues("orphan_pod", "medium")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.integrityCheckRuns))
}

func TestObserveOutcomes(t *testing.T) {
	m, err := New(prometheus.NewRegistry())
	require.NoError(t, err)

	m.ObserveRepair(nil)
	m.ObserveRepair(errors.New("boom"))
	m.ObserveInvoiceGeneration(nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.repairs.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.repairs.WithLabelValues(OutcomeFailure)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.invoiceGeneration.WithLabelValues(OutcomeSuccess)))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *FulfillmentMetrics
	m.ObserveIssues([]model.IntegrityIssue{{Type: model.IssueOrphanPOD}})
	m.ObserveRepair(nil)
	m.ObserveInvoiceGeneration(errors.New("x"))
}

func TestDoubleRegistrationFails(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := New(reg)
	require.NoError(t, err)

	_, err = New(reg)
	assert.Error(t, err)
}
