package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-fulfillment-service/internal/apperror"
	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
	"github.com/fekuna/omnipos-fulfillment-service/internal/pod/dto"
	"go.uber.org/zap"
)

// CheckIntegrity runs the scans and records the findings in the issue metrics.
func (uc *podUseCase) CheckIntegrity(ctx context.Context) ([]model.IntegrityIssue, error) {
	issues, err := uc.scan(ctx)
	if err != nil {
		return nil, err
	}
	uc.metrics.ObserveIssues(issues)
	return issues, nil
}

// scan reads all three collections and runs the four scans in a fixed
// order. Issues keep scan order, then collection order. Store errors are
// returned as is.
func (uc *podUseCase) scan(ctx context.Context) ([]model.IntegrityIssue, error) {
	orders, err := uc.orders.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	invoices, err := uc.invoices.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	pods, err := uc.repo.FindAll(ctx, nil)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	issues := make([]model.IntegrityIssue, 0)
	issues = append(issues, ordersWithoutInvoice(orders, invoices, now)...)
	issues = append(issues, paidInvoicesWithoutPOD(invoices, now)...)
	issues = append(issues, orphanPODs(pods, now)...)
	issues = append(issues, linkMismatches(invoices, pods, now)...)
	return issues, nil
}

func newIssue(typ model.IssueType, sev model.Severity, desc string, now time.Time) model.IntegrityIssue {
	return model.IntegrityIssue{
		ID:          model.NewIssueID(),
		Type:        typ,
		Description: desc,
		Severity:    sev,
		DetectedAt:  now,
	}
}

func ordersWithoutInvoice(orders []model.Order, invoices []model.Invoice, now time.Time) []model.IntegrityIssue {
	invoiced := make(map[model.OrderID]struct{}, len(invoices))
	for _, inv := range invoices {
		if inv.OrderID != "" {
			invoiced[inv.OrderID] = struct{}{}
		}
	}

	var issues []model.IntegrityIssue
	for _, o := range orders {
		if !o.IsCompleted() {
			continue
		}
		if _, ok := invoiced[o.ID]; ok {
			continue
		}
		issue := newIssue(model.IssueOrderWithoutInvoice, model.SeverityHigh,
			fmt.Sprintf("order %s is completed but has no invoice", o.PONumber), now)
		issue.OrderID = o.ID
		issues = append(issues, issue)
	}
	return issues
}

func paidInvoicesWithoutPOD(invoices []model.Invoice, now time.Time) []model.IntegrityIssue {
	var issues []model.IntegrityIssue
	for _, inv := range invoices {
		if inv.Status != model.InvoiceStatusPaid || inv.PODID != "" {
			continue
		}
		issue := newIssue(model.IssueInvoiceWithoutPOD, model.SeverityHigh,
			fmt.Sprintf("invoice %s is paid but has no proof of delivery", inv.InvoiceNumber), now)
		issue.InvoiceID = inv.ID
		issue.OrderID = inv.OrderID
		issues = append(issues, issue)
	}
	return issues
}

func orphanPODs(pods []model.POD, now time.Time) []model.IntegrityIssue {
	var issues []model.IntegrityIssue
	for _, p := range pods {
		if !p.IsOrphan() {
			continue
		}
		issue := newIssue(model.IssueOrphanPOD, model.SeverityMedium,
			fmt.Sprintf("pod %s is not linked to an order or invoice", p.PONumber), now)
		issue.PODID = p.ID
		issues = append(issues, issue)
	}
	return issues
}

// linkMismatches flags invoices whose POD exists but points at another invoice.
// A podId naming a missing POD is not reported.
func linkMismatches(invoices []model.Invoice, pods []model.POD, now time.Time) []model.IntegrityIssue {
	byID := make(map[model.PODID]model.POD, len(pods))
	for _, p := range pods {
		byID[p.ID] = p
	}

	var issues []model.IntegrityIssue
	for _, inv := range invoices {
		if inv.PODID == "" {
			continue
		}
		p, ok := byID[inv.PODID]
		if !ok || p.InvoiceID == inv.ID {
			continue
		}
		issue := newIssue(model.IssueDataMismatch, model.SeverityMedium,
			fmt.Sprintf("invoice %s references pod %s which links to invoice %q", inv.InvoiceNumber, p.ID, p.InvoiceID), now)
		issue.InvoiceID = inv.ID
		issue.PODID = p.ID
		issues = append(issues, issue)
	}
	return issues
}

// AutoFixIntegrityIssues re-runs the scans and synthesizes an automatic
// invoice for each order_without_invoice finding. A failed synthesis is
// recorded and the pass continues.
func (uc *podUseCase) AutoFixIntegrityIssues(ctx context.Context, userID model.UserID) (*dto.RepairReport, error) {
	issues, err := uc.scan(ctx)
	if err != nil {
		return nil, err
	}

	report := &dto.RepairReport{Outcomes: []dto.RepairOutcome{}}
	for _, issue := range issues {
		if issue.Type != model.IssueOrderWithoutInvoice {
			continue
		}

		inv, err := uc.repairOrder(ctx, issue.OrderID, userID)
		uc.metrics.ObserveRepair(err)
		if err != nil {
			uc.logger.Error("integrity repair failed",
				zap.String("order_id", string(issue.OrderID)),
				zap.Error(err),
			)
		}
		report.Record(dto.RepairOutcome{Issue: issue, Invoice: inv, Err: err})
	}

	uc.logger.Info("integrity repair finished",
		zap.Int("fixed", report.Fixed),
		zap.Int("errors", report.Errors),
	)
	return report, nil
}

func (uc *podUseCase) repairOrder(ctx context.Context, orderID model.OrderID, userID model.UserID) (*model.Invoice, error) {
	const op = "autoFixIntegrityIssues"

	o, err := uc.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, apperror.RepairFailure(op, "order", string(orderID), err)
	}
	if o == nil {
		return nil, apperror.RepairFailure(op, "order", string(orderID), apperror.ErrNotFound)
	}

	inv := model.InvoiceFromOrder(*o, userID, model.GenerationAutomatic, uc.now())
	if err := uc.invoices.Create(ctx, &inv); err != nil {
		return nil, apperror.RepairFailure(op, "order", string(orderID), err)
	}
	return &inv, nil
}
