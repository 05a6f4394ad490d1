package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk form of createdAt and dueDate.
const DateLayout = "2006-01-02"

type Order struct {
	ID                    string          `json:"id" gorm:"primaryKey;size:64"`
	OrderCode             string          `json:"orderCode" gorm:"uniqueIndex;size:32;not null"`
	CustomerName          string          `json:"customerName" gorm:"not null"`
	Phone                 string          `json:"phone" gorm:"index"`
	Source                string          `json:"source"`
	Photos4x6             int             `json:"photos4x6"`
	PhotosA4              int             `json:"photosA4"`
	TotalAmount           decimal.Decimal `json:"totalAmount" gorm:"type:decimal(12,2);not null;default:0"`
	PaidAmount            decimal.Decimal `json:"paidAmount" gorm:"type:decimal(12,2);not null;default:0"`
	PaymentStatus         PaymentStatus   `json:"paymentStatus" gorm:"size:20;default:'unpaid'"`
	PaymentMethod         PaymentMethod   `json:"paymentMethod" gorm:"size:20;default:'cash'"`
	Status                OrderStatus     `json:"status" gorm:"size:20;default:'new'"`
	Urgency               Urgency         `json:"urgency" gorm:"size:10;default:'normal'"`
	OrderType             OrderType       `json:"orderType" gorm:"size:20;default:'unspecified'"`
	CreatedOn             string          `json:"createdAt" gorm:"column:created_on;size:10"`
	DueDate               *string         `json:"dueDate" gorm:"size:10"`
	Notes                 string          `json:"notes" gorm:"type:text"`
	OnlinePaymentID       string          `json:"onlinePaymentId,omitempty"`
	OnlinePaymentStatus   OnlinePayStatus `json:"onlinePaymentStatus,omitempty" gorm:"size:20"`
	OnlinePaymentProvider string          `json:"onlinePaymentProvider,omitempty"`
	OnlinePaymentURL      string          `json:"onlinePaymentUrl,omitempty"`
	OnlinePaymentCreated  string          `json:"onlinePaymentCreatedAt,omitempty"`
	OnlinePaymentPaidAt   string          `json:"onlinePaymentPaidAt,omitempty"`
	UpdatedAt             time.Time       `json:"updatedAt"`
}

type OrderStatus string

const (
	StatusNew          OrderStatus = "new"
	StatusInProduction OrderStatus = "in_production"
	StatusReady        OrderStatus = "ready"
	StatusDelivered    OrderStatus = "delivered"
	StatusCancelled    OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusNew, StatusInProduction, StatusReady, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentTransfer PaymentMethod = "transfer"
	PaymentOnline   PaymentMethod = "online"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentTransfer || m == PaymentOnline
}

type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyUrgent Urgency = "urgent"
)

type OrderType string

const (
	OrderTypeUnspecified OrderType = "unspecified"
	OrderTypeGift        OrderType = "gift"
	OrderTypeAlbum       OrderType = "album"
	OrderTypeWallArt     OrderType = "wall_art"
)

type OnlinePayStatus string

const (
	OnlinePayNone     OnlinePayStatus = "none"
	OnlinePayPending  OnlinePayStatus = "pending"
	OnlinePayPaid     OnlinePayStatus = "paid"
	OnlinePayFailed   OnlinePayStatus = "failed"
	OnlinePayRefunded OnlinePayStatus = "refunded"
)

// TotalPhotos is the sum of all print counts.
func (o *Order) TotalPhotos() int {
	return o.Photos4x6 + o.PhotosA4
}

// Unpaid is totalAmount - paidAmount.
func (o *Order) Unpaid() decimal.Decimal {
	return o.TotalAmount.Sub(o.PaidAmount)
}

// RefreshPaymentStatus recomputes PaymentStatus from the current amounts.
func (o *Order) RefreshPaymentStatus() {
	o.PaymentStatus = ComputePaymentStatus(o.TotalAmount, o.PaidAmount)
}

// ApplyDefaults fills enum fields left empty by a client.
func (o *Order) ApplyDefaults() {
	if o.Status == "" {
		o.Status = StatusNew
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentCash
	}
	if o.Urgency == "" {
		o.Urgency = UrgencyNormal
	}
	if o.OrderType == "" {
		o.OrderType = OrderTypeUnspecified
	}
	if o.OrderCode == "" {
		o.OrderCode = o.ID
	}
}

// ParseDate parses a YYYY-MM-DD value. Surrounding time parts are rejected.
func ParseDate(value string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// OrderPatch carries a shallow partial update. Nil fields are left alone.
type OrderPatch struct {
	ID                    string           `json:"id,omitempty"`
	OrderCode             *string          `json:"orderCode,omitempty"`
	CustomerName          *string          `json:"customerName,omitempty"`
	Phone                 *string          `json:"phone,omitempty"`
	Source                *string          `json:"source,omitempty"`
	Photos4x6             *int             `json:"photos4x6,omitempty"`
	PhotosA4              *int             `json:"photosA4,omitempty"`
	TotalAmount           *decimal.Decimal `json:"totalAmount,omitempty"`
	PaidAmount            *decimal.Decimal `json:"paidAmount,omitempty"`
	PaymentMethod         *PaymentMethod   `json:"paymentMethod,omitempty"`
	Status                *OrderStatus     `json:"status,omitempty"`
	Urgency               *Urgency         `json:"urgency,omitempty"`
	OrderType             *OrderType       `json:"orderType,omitempty"`
	CreatedOn             *string          `json:"createdAt,omitempty"`
	DueDate               *string          `json:"dueDate,omitempty"`
	ClearDueDate          bool             `json:"clearDueDate,omitempty"`
	Notes                 *string          `json:"notes,omitempty"`
	OnlinePaymentID       *string          `json:"onlinePaymentId,omitempty"`
	OnlinePaymentStatus   *OnlinePayStatus `json:"onlinePaymentStatus,omitempty"`
	OnlinePaymentProvider *string          `json:"onlinePaymentProvider,omitempty"`
	OnlinePaymentURL      *string          `json:"onlinePaymentUrl,omitempty"`
	OnlinePaymentCreated  *string          `json:"onlinePaymentCreatedAt,omitempty"`
	OnlinePaymentPaidAt   *string          `json:"onlinePaymentPaidAt,omitempty"`
}

// Apply merges the patch into o and recomputes the payment status.
// Applying the same patch twice leaves o as after the first application.
func (p OrderPatch) Apply(o *Order) {
	setString(&o.OrderCode, p.OrderCode)
	setString(&o.CustomerName, p.CustomerName)
	setString(&o.Phone, p.Phone)
	setString(&o.Source, p.Source)
	if p.Photos4x6 != nil {
		o.Photos4x6 = *p.Photos4x6
	}
	if p.PhotosA4 != nil {
		o.PhotosA4 = *p.PhotosA4
	}
	if p.TotalAmount != nil {
		o.TotalAmount = *p.TotalAmount
	}
	if p.PaidAmount != nil {
		o.PaidAmount = *p.PaidAmount
	}
	if p.PaymentMethod != nil {
		o.PaymentMethod = *p.PaymentMethod
	}
	if p.Status != nil {
		o.Status = *p.Status
	}
	if p.Urgency != nil {
		o.Urgency = *p.Urgency
	}
	if p.OrderType != nil {
		o.OrderType = *p.OrderType
	}
	setString(&o.CreatedOn, p.CreatedOn)
	if p.ClearDueDate || (p.DueDate != nil && *p.DueDate == "") {
		o.DueDate = nil
	} else if p.DueDate != nil {
		due := *p.DueDate
		o.DueDate = &due
	}
	setString(&o.Notes, p.Notes)
	setString(&o.OnlinePaymentID, p.OnlinePaymentID)
	if p.OnlinePaymentStatus != nil {
		o.OnlinePaymentStatus = *p.OnlinePaymentStatus
	}
	setString(&o.OnlinePaymentProvider, p.OnlinePaymentProvider)
	setString(&o.OnlinePaymentURL, p.OnlinePaymentURL)
	setString(&o.OnlinePaymentCreated, p.OnlinePaymentCreated)
	setString(&o.OnlinePaymentPaidAt, p.OnlinePaymentPaidAt)

	o.RefreshPaymentStatus()
}

// Validate rejects negative counts and amounts.
func (p OrderPatch) Validate() error {
	if p.Photos4x6 != nil && *p.Photos4x6 < 0 {
		return NewValidationError("photos4x6 must not be negative")
	}
	if p.PhotosA4 != nil && *p.PhotosA4 < 0 {
		return NewValidationError("photosA4 must not be negative")
	}
	if p.TotalAmount != nil && p.TotalAmount.IsNegative() {
		return NewValidationError("totalAmount must not be negative")
	}
	if p.PaidAmount != nil && p.PaidAmount.IsNegative() {
		return NewValidationError("paidAmount must not be negative")
	}
	if p.Status != nil && !p.Status.Valid() {
		return NewValidationError("unknown status " + string(*p.Status))
	}
	if p.PaymentMethod != nil && !p.PaymentMethod.Valid() {
		return NewValidationError("unknown payment method " + string(*p.PaymentMethod))
	}
	if p.CustomerName != nil && *p.CustomerName == "" {
		return NewValidationError("customerName must not be empty")
	}
	if p.DueDate != nil && *p.DueDate != "" {
		if _, ok := ParseDate(*p.DueDate); !ok {
			return NewValidationError("dueDate must be formatted as " + DateLayout)
		}
	}
	if p.CreatedOn != nil {
		if _, ok := ParseDate(*p.CreatedOn); !ok {
			return NewValidationError("createdAt must be formatted as " + DateLayout)
		}
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
