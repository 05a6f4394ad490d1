package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"printshop/internal/models"
	"printshop/internal/store"
	"printshop/pkg/backend"
)

// RemoteOrders is the hosted order collection as seen by the admin side.
type RemoteOrders interface {
	ListOrders(ctx context.Context, filter backend.Filter) ([]models.Order, error)
	CreateOrder(ctx context.Context, order models.Order) (*models.Order, error)
	PatchOrder(ctx context.Context, key string, patch models.OrderPatch) (*models.Order, error)
}

type SyncState string

const (
	SyncIdle    SyncState = "idle"
	SyncLoading SyncState = "loading"
	SyncError   SyncState = "error"
)

// SyncResult is the outcome of one refresh. On failure Orders holds the
// last known good list.
type SyncResult struct {
	State  SyncState      `json:"state"`
	Orders []models.Order `json:"orders"`
	Error  string         `json:"error,omitempty"`
}

type SyncStatus struct {
	State      SyncState  `json:"state"`
	Error      string     `json:"error,omitempty"`
	LastSynced *time.Time `json:"lastSynced,omitempty"`
}

// CreateOrderRequest is the admin order form.
type CreateOrderRequest struct {
	models.Order
	SourceChannels []string `json:"sourceChannels"`
	SourceOther    string   `json:"sourceOther"`
	AutoPrice      bool     `json:"autoPrice"`
}

type OrderBook interface {
	List(ctx context.Context) []models.Order
	Get(ctx context.Context, id string) (models.Order, error)
	Create(ctx context.Context, req CreateOrderRequest) (models.Order, error)
	Update(ctx context.Context, patch models.OrderPatch) (models.Order, error)
	SetStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error)
	AppendNote(ctx context.Context, id, note string) (models.Order, error)
	AppendTemplate(ctx context.Context, id string, index int) (models.Order, error)
	RefreshFromRemote(ctx context.Context) SyncResult
	SyncStatus() SyncStatus
}

type orderBook struct {
	orders   *store.OrderStore
	settings SettingsService
	remote   RemoteOrders
	notifier Notifier
	now      func() time.Time

	mu         sync.Mutex
	inFlight   int
	state      SyncState
	lastErr    string
	lastSynced *time.Time
}

// NewOrderBook wires the local store with an optional remote. A nil remote
// keeps the book purely local.
func NewOrderBook(orders *store.OrderStore, settings SettingsService, remote RemoteOrders, notifier Notifier) OrderBook {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &orderBook{
		orders:   orders,
		settings: settings,
		remote:   remote,
		notifier: notifier,
		now:      time.Now,
		state:    SyncIdle,
	}
}

func (b *orderBook) List(ctx context.Context) []models.Order {
	return b.orders.List(ctx)
}

func (b *orderBook) Get(ctx context.Context, id string) (models.Order, error) {
	order, ok := b.orders.GetByID(ctx, id)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s", models.ErrOrderNotFound, id)
	}
	return order, nil
}

func (b *orderBook) Create(ctx context.Context, req CreateOrderRequest) (models.Order, error) {
	order := req.Order
	order.CustomerName = strings.TrimSpace(order.CustomerName)
	order.Phone = strings.TrimSpace(order.Phone)
	if err := validateNewOrder(order); err != nil {
		return models.Order{}, err
	}

	settings := b.settings.Get(ctx)
	today := b.now()
	if order.CreatedOn == "" {
		order.CreatedOn = today.Format(models.DateLayout)
	}
	if order.DueDate != nil && *order.DueDate == "" {
		order.DueDate = nil
	}
	if order.DueDate == nil && settings.DefaultDueDays > 0 {
		if created, ok := models.ParseDate(order.CreatedOn); ok {
			due := created.AddDate(0, 0, settings.DefaultDueDays).Format(models.DateLayout)
			order.DueDate = &due
		}
	}
	if len(req.SourceChannels) > 0 || req.SourceOther != "" {
		order.Source = models.JoinSources(req.SourceChannels, req.SourceOther)
	}
	if req.AutoPrice {
		order.TotalAmount = settings.Quote(order.Photos4x6, order.PhotosA4)
	}

	order.ID = b.orders.GenerateID(ctx, today.Year())
	order.OrderCode = order.ID
	order.UpdatedAt = today
	order.ApplyDefaults()
	order.RefreshPaymentStatus()

	b.orders.Insert(ctx, order)
	log.Printf("Order %s created for %s", order.ID, order.CustomerName)

	if b.remote != nil {
		if _, err := b.remote.CreateOrder(ctx, order); err != nil {
			log.Printf("Warning: order %s kept locally, remote create failed: %v", order.ID, err)
		}
	}
	return order, nil
}

func (b *orderBook) Update(ctx context.Context, patch models.OrderPatch) (models.Order, error) {
	if patch.ID == "" {
		return models.Order{}, models.NewValidationError("id is required")
	}
	if err := patch.Validate(); err != nil {
		return models.Order{}, err
	}

	before, ok := b.orders.GetByID(ctx, patch.ID)
	if !ok {
		return models.Order{}, fmt.Errorf("%w: %s", models.ErrOrderNotFound, patch.ID)
	}

	updated, err := b.orders.Update(ctx, patch)
	if err != nil {
		return models.Order{}, err
	}

	if b.remote != nil {
		if _, err := b.remote.PatchOrder(ctx, updated.ID, patch); err != nil {
			log.Printf("Warning: order %s updated locally, remote patch failed: %v", updated.ID, err)
		}
	}

	if before.Status != models.StatusReady && updated.Status == models.StatusReady {
		if err := b.notifier.NotifyReady(ctx, updated); err != nil {
			log.Printf("Warning: %v", err)
		}
	}
	return updated, nil
}

// SetStatus allows any transition, including leaving a terminal status.
func (b *orderBook) SetStatus(ctx context.Context, id string, status models.OrderStatus) (models.Order, error) {
	return b.Update(ctx, models.OrderPatch{ID: id, Status: &status})
}

func (b *orderBook) AppendNote(ctx context.Context, id, note string) (models.Order, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		return models.Order{}, models.NewValidationError("note must not be empty")
	}
	order, err := b.Get(ctx, id)
	if err != nil {
		return models.Order{}, err
	}
	notes := note
	if order.Notes != "" {
		notes = order.Notes + "\n" + note
	}
	return b.Update(ctx, models.OrderPatch{ID: id, Notes: &notes})
}

func (b *orderBook) AppendTemplate(ctx context.Context, id string, index int) (models.Order, error) {
	templates := b.settings.Get(ctx).NoteTemplates
	if index < 0 || index >= len(templates) {
		return models.Order{}, models.NewValidationError(fmt.Sprintf("no note template #%d", index))
	}
	return b.AppendNote(ctx, id, templates[index])
}

// RefreshFromRemote replaces the local list with the remote collection.
// A failed or cancelled fetch leaves the local list untouched.
func (b *orderBook) RefreshFromRemote(ctx context.Context) SyncResult {
	if b.remote == nil {
		return b.fail(ctx, errors.New("no remote backend configured"))
	}

	b.mu.Lock()
	b.inFlight++
	b.mu.Unlock()

	orders, err := b.remote.ListOrders(ctx, backend.Filter{})
	if err == nil {
		err = ctx.Err()
	}

	b.mu.Lock()
	b.inFlight--
	b.mu.Unlock()

	if err != nil {
		return b.fail(ctx, err)
	}

	for i := range orders {
		orders[i].ApplyDefaults()
		orders[i].RefreshPaymentStatus()
	}
	b.orders.ReplaceAll(ctx, orders)

	b.mu.Lock()
	now := b.now()
	b.state = SyncIdle
	b.lastErr = ""
	b.lastSynced = &now
	b.mu.Unlock()

	log.Printf("Synced %d orders from remote", len(orders))
	return SyncResult{State: SyncIdle, Orders: orders}
}

func (b *orderBook) fail(ctx context.Context, err error) SyncResult {
	msg := syncErrorMessage(err)
	log.Printf("Warning: order sync failed: %v", err)

	b.mu.Lock()
	b.state = SyncError
	b.lastErr = msg
	b.mu.Unlock()

	return SyncResult{
		State:  SyncError,
		Orders: b.orders.List(context.WithoutCancel(ctx)),
		Error:  msg,
	}
}

func (b *orderBook) SyncStatus() SyncStatus {
	b.mu.Lock()
	defer b.mu.Unlock()
	status := SyncStatus{State: b.state, Error: b.lastErr, LastSynced: b.lastSynced}
	if b.inFlight > 0 {
		status.State = SyncLoading
	}
	return status
}

func syncErrorMessage(err error) string {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		return "Could not load orders from the server: " + apiErr.Message
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "Loading orders was cancelled"
	default:
		return "Could not load orders from the server, showing saved data"
	}
}

func validateNewOrder(order models.Order) error {
	if order.CustomerName == "" {
		return models.NewValidationError("customerName is required")
	}
	if order.Phone == "" {
		return models.NewValidationError("phone is required")
	}
	if order.Photos4x6 < 0 || order.PhotosA4 < 0 {
		return models.NewValidationError("photo counts must not be negative")
	}
	if order.TotalAmount.IsNegative() || order.PaidAmount.IsNegative() {
		return models.NewValidationError("amounts must not be negative")
	}
	if order.Status != "" && !order.Status.Valid() {
		return models.NewValidationError("unknown status " + string(order.Status))
	}
	if order.PaymentMethod != "" && !order.PaymentMethod.Valid() {
		return models.NewValidationError("unknown payment method " + string(order.PaymentMethod))
	}
	if order.DueDate != nil && *order.DueDate != "" {
		if _, ok := models.ParseDate(*order.DueDate); !ok {
			return models.NewValidationError("dueDate must be YYYY-MM-DD")
		}
	}
	return nil
}
