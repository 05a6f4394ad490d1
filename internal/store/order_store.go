package store

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"printshop/internal/models"
)

const OrdersKey = "orders"

// OrderStore keeps the full order list in one local slot. Every mutation
// rewrites the whole list; write failures are logged and swallowed.
type OrderStore struct {
	mu   sync.Mutex
	slot *Slot[[]models.Order]
}

func NewOrderStore(kv KV) *OrderStore {
	return &OrderStore{slot: NewSlot(kv, OrdersKey, SeedOrders, false)}
}

// List returns the stored orders, or the seed list if nothing usable is stored.
func (s *OrderStore) List(ctx context.Context) []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slot.Load(ctx)
}

func (s *OrderStore) GetByID(ctx context.Context, id string) (models.Order, bool) {
	for _, o := range s.List(ctx) {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// Insert appends o. The caller provides a unique id, see GenerateID.
func (s *OrderStore) Insert(ctx context.Context, o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.slot.Load(ctx)
	orders = append(orders, o)
	s.persist(ctx, orders)
}

// Update merges patch into the order with the same id. Nothing is written
// and ErrOrderNotFound is returned when no order matches.
func (s *OrderStore) Update(ctx context.Context, patch models.OrderPatch) (models.Order, error) {
	if err := patch.Validate(); err != nil {
		return models.Order{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.slot.Load(ctx)
	for i := range orders {
		if orders[i].ID == patch.ID {
			patch.Apply(&orders[i])
			s.persist(ctx, orders)
			return orders[i], nil
		}
	}
	return models.Order{}, fmt.Errorf("%w: %s", models.ErrOrderNotFound, patch.ID)
}

// ReplaceAll overwrites the list, used after a successful remote fetch.
func (s *OrderStore) ReplaceAll(ctx context.Context, orders []models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.persist(ctx, orders)
}

// Merge upserts incoming orders by id in a single write. Unlike the other
// mutations it reports a failed write.
func (s *OrderStore) Merge(ctx context.Context, incoming []models.Order) (inserted, updated int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	orders := s.slot.Load(ctx)
	index := make(map[string]int, len(orders))
	for i, o := range orders {
		index[o.ID] = i
	}
	for _, o := range incoming {
		if i, ok := index[o.ID]; ok {
			orders[i] = o
			updated++
			continue
		}
		index[o.ID] = len(orders)
		orders = append(orders, o)
		inserted++
	}
	if err := s.persist(ctx, orders); err != nil {
		return 0, 0, err
	}
	return inserted, updated, nil
}

// GenerateID returns the next local id for year.
func (s *OrderStore) GenerateID(ctx context.Context, year int) string {
	return NextOrderID(s.List(ctx), year)
}

func (s *OrderStore) persist(ctx context.Context, orders []models.Order) error {
	if orders == nil {
		orders = []models.Order{}
	}
	if err := s.slot.Save(ctx, orders); err != nil {
		log.Printf("Warning: failed to persist orders: %v", err)
		return err
	}
	return nil
}

// NextOrderID scans ids of the form OM-<year>-<seq> and returns max+1,
// zero-padded to 4 digits. Gaps are never filled.
func NextOrderID(orders []models.Order, year int) string {
	prefix := fmt.Sprintf("OM-%d-", year)
	max := 0
	for _, o := range orders {
		for _, id := range []string{o.ID, o.OrderCode} {
			if !strings.HasPrefix(id, prefix) {
				continue
			}
			n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
			if err == nil && n > max {
				max = n
			}
		}
	}
	return fmt.Sprintf("%s%04d", prefix, max+1)
}
