package model

import "time"

type IssueType string

const (
	IssueOrderWithoutInvoice IssueType = "order_without_invoice"
	IssueInvoiceWithoutPOD   IssueType = "invoice_without_pod"
	IssueOrphanPOD           IssueType = "orphan_pod"
	IssueDataMismatch        IssueType = "data_mismatch"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// IntegrityIssue is a finding of the reconciliation engine. It is never persisted.
type IntegrityIssue struct {
	ID          IssueID   `json:"id"`
	Type        IssueType `json:"type"`
	OrderID     OrderID   `json:"order_id,omitempty"`
	InvoiceID   InvoiceID `json:"invoice_id,omitempty"`
	PODID       PODID     `json:"pod_id,omitempty"`
	Description string    `json:"description"`
	Severity    Severity  `json:"severity"`
	DetectedAt  time.Time `json:"detected_at"`
}
