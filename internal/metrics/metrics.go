package metrics

import (
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// FulfillmentMetrics counts batch and reconciliation outcomes. A nil
// *FulfillmentMetrics is valid and records nothing.
type FulfillmentMetrics struct {
	issuesDetected     *prometheus.CounterVec
	repairs            *prometheus.CounterVec
	invoiceGeneration  *prometheus.CounterVec
	integrityCheckRuns prometheus.Counter
}

func New(registerer prometheus.Registerer) (*FulfillmentMetrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	m := &FulfillmentMetrics{
		issuesDetected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_integrity_issues_total",
			Help: "Integrity issues detected across orders, invoices and PODs.",
		}, []string{"type", "severity"}),
		repairs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_integrity_repairs_total",
			Help: "Auto-repair attempts by outcome.",
		}, []string{"outcome"}),
		invoiceGeneration: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fulfillment_invoice_generation_total",
			Help: "Automatic invoice generation attempts by outcome.",
		}, []string{"outcome"}),
		integrityCheckRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fulfillment_integrity_checks_total",
			Help: "Completed integrity check scans.",
		}),
	}

	for _, c := range []prometheus.Collector{m.issuesDetected, m.repairs, m.invoiceGeneration, m.integrityCheckRuns} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *FulfillmentMetrics) ObserveIssues(issues []model.IntegrityIssue) {
	if m == nil {
		return
	}
	m.integrityCheckRuns.Inc()
	for _, issue := range issues {
		m.issuesDetected.WithLabelValues(string(issue.Type), string(issue.Severity)).Inc()
	}
}

func (m *FulfillmentMetrics) ObserveRepair(err error) {
	if m == nil {
		return
	}
	m.repairs.WithLabelValues(outcome(err)).Inc()
}

func (m *FulfillmentMetrics) ObserveInvoiceGeneration(err error) {
	if m == nil {
		return
	}
	m.invoiceGeneration.WithLabelValues(outcome(err)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
