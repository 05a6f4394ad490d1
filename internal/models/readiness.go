package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Tone string

const (
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneMuted   Tone = "muted"
)

type ReadinessCode string

const (
	ReadyDelivered      ReadinessCode = "delivered"
	ReadyCancelled      ReadinessCode = "cancelled"
	ReadyLate           ReadinessCode = "late"
	ReadyForPickupPaid  ReadinessCode = "ready_for_pickup"
	ReadyUnpaid         ReadinessCode = "ready_unpaid"
	ReadyInProgress     ReadinessCode = "in_progress"
	ReadyMissingData    ReadinessCode = "missing_data"
	ReadyWaitingPayment ReadinessCode = "waiting_payment"
	ReadyNormal         ReadinessCode = "normal"
)

type Readiness struct {
	Code  ReadinessCode `json:"code"`
	Label string        `json:"label"`
	Tone  Tone          `json:"tone"`
}

var paidEpsilon = decimal.New(1, -4)

// ClassifyReadiness maps an order onto its at-a-glance readiness.
// Rules are checked in order and the first match wins. today is compared
// by calendar date only.
func ClassifyReadiness(o Order, today time.Time) Readiness {
	hasPhotos := o.TotalPhotos() > 0
	hasPricing := o.TotalAmount.IsPositive()
	due, hasDue := dueDate(o)

	switch {
	case o.Status == StatusDelivered:
		return Readiness{ReadyDelivered, "Delivered", ToneMuted}
	case o.Status == StatusCancelled:
		return Readiness{ReadyCancelled, "Cancelled", ToneMuted}
	case hasDue && due.Before(dateOnly(today)):
		return Readiness{ReadyLate, "Late", ToneDanger}
	case hasPhotos && hasPricing && o.PaidAmount.GreaterThanOrEqual(o.TotalAmount.Sub(paidEpsilon)) && o.Status == StatusReady:
		return Readiness{ReadyForPickupPaid, "Ready for pickup, paid", ToneSuccess}
	case hasPhotos && o.Status == StatusReady:
		return Readiness{ReadyUnpaid, "Ready, unpaid", ToneWarning}
	case hasPhotos && o.Status == StatusInProduction:
		return Readiness{ReadyInProgress, "In progress", ToneWarning}
	case !hasPhotos || !hasPricing || !hasDue:
		return Readiness{ReadyMissingData, "Missing data", ToneMuted}
	case o.PaidAmount.IsPositive() && o.PaidAmount.LessThan(o.TotalAmount):
		return Readiness{ReadyWaitingPayment, "Waiting for payment", ToneWarning}
	default:
		return Readiness{ReadyNormal, "Under follow-up", ToneMuted}
	}
}

// dueDate treats an empty or unparseable due date as absent.
func dueDate(o Order) (time.Time, bool) {
	if o.DueDate == nil || *o.DueDate == "" {
		return time.Time{}, false
	}
	return ParseDate(*o.DueDate)
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
