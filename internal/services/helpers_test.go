package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"printshop/internal/models"
	"printshop/internal/redis"
	"printshop/internal/store"
	"printshop/pkg/backend"
)

var testToday = time.Date(2024, 6, 10, 9, 30, 0, 0, time.UTC)

func newKV(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client, err := redis.Initialize("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client, mr
}

func newSettings(t *testing.T, kv store.KV) SettingsService {
	t.Helper()
	return NewSettingsService(store.NewSettingsStore(kv, models.DefaultSettings()))
}

type fakeRemote struct {
	mu      sync.Mutex
	orders  []models.Order
	err     error
	created []models.Order
	patched []string
	release chan struct{}
}

func (f *fakeRemote) ListOrders(ctx context.Context, _ backend.Filter) ([]models.Order, error) {
	if f.release != nil {
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Order(nil), f.orders...), nil
}

func (f *fakeRemote) CreateOrder(_ context.Context, order models.Order) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, order)
	return &order, nil
}

func (f *fakeRemote) PatchOrder(_ context.Context, key string, _ models.OrderPatch) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.patched = append(f.patched, key)
	return &models.Order{ID: key}, nil
}

type fakeNotifier struct {
	sent []models.Order
	err  error
}

func (n *fakeNotifier) NotifyReady(_ context.Context, order models.Order) error {
	n.sent = append(n.sent, order)
	return n.err
}

type fakeExpenses struct {
	expenses []models.Expense
	err      error
}

func (f fakeExpenses) ListExpenses(context.Context) ([]models.Expense, error) {
	return f.expenses, f.err
}

var errRemoteDown = errors.New("connection refused")
