package dto

import (
	"encoding/json"

	"github.com/fekuna/omnipos-fulfillment-service/internal/model"
)

type PODFilters struct {
	Status        model.PODStatus
	StoreID       model.StoreID
	SalespersonID model.UserID
	Validated     *bool
}

func (f *PODFilters) Match(p *model.POD) bool {
	if f == nil {
		return true
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.StoreID != "" && p.StoreID != f.StoreID {
		return false
	}
	if f.SalespersonID != "" && p.SalespersonID != f.SalespersonID {
		return false
	}
	if f.Validated != nil && p.IsValidated != *f.Validated {
		return false
	}
	return true
}

// RepairOutcome is the result of one auto-repair attempt.
type RepairOutcome struct {
	Issue   model.IntegrityIssue
	Invoice *model.Invoice
	Err     error
}

func (o RepairOutcome) MarshalJSON() ([]byte, error) {
	out := struct {
		Issue   model.IntegrityIssue `json:"issue"`
		Invoice *model.Invoice       `json:"invoice,omitempty"`
		Error   string               `json:"error,omitempty"`
	}{Issue: o.Issue, Invoice: o.Invoice}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	return json.Marshal(out)
}

type RepairReport struct {
	Fixed    int             `json:"fixed"`
	Errors   int             `json:"errors"`
	Outcomes []RepairOutcome `json:"outcomes"`
}

// Record appends an outcome and updates the counters.
func (r *RepairReport) Record(o RepairOutcome) {
	if o.Err != nil {
		r.Errors++
	} else {
		r.Fixed++
	}
	r.Outcomes = append(r.Outcomes, o)
}
