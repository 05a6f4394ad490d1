package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/models"
	"printshop/internal/store"
	"printshop/pkg/backend"
)

func newBook(t *testing.T, remote RemoteOrders, notifier Notifier) (*orderBook, *store.OrderStore) {
	t.Helper()
	kv, _ := newKV(t)
	orders := store.NewOrderStore(kv)
	book := NewOrderBook(orders, newSettings(t, kv), remote, notifier).(*orderBook)
	book.now = func() time.Time { return testToday }
	return book, orders
}

func TestCreateOrderDefaults(t *testing.T) {
	remote := &fakeRemote{}
	book, orders := newBook(t, remote, nil)
	ctx := context.Background()

	created, err := book.Create(ctx, CreateOrderRequest{
		Order:          models.Order{CustomerName: "  Layla ", Phone: "0511111111", Photos4x6: 5, PhotosA4: 1},
		SourceChannels: []string{"واتساب", "معرض"},
		SourceOther:    "referral",
		AutoPrice:      true,
	})
	require.NoError(t, err)

	assert.Equal(t, "OM-2024-0004", created.ID)
	assert.Equal(t, created.ID, created.OrderCode)
	assert.Equal(t, "Layla", created.CustomerName)
	assert.Equal(t, "2024-06-10", created.CreatedOn)
	require.NotNil(t, created.DueDate)
	assert.Equal(t, "2024-06-13", *created.DueDate)
	assert.Equal(t, "واتساب + معرض + referral", created.Source)
	assert.True(t, decimal.NewFromInt(20).Equal(created.TotalAmount))
	assert.Equal(t, models.Unpaid, created.PaymentStatus)
	assert.Equal(t, models.StatusNew, created.Status)

	_, ok := orders.GetByID(ctx, created.ID)
	assert.True(t, ok)
	require.Len(t, remote.created, 1)
	assert.Equal(t, created.ID, remote.created[0].ID)
}

func TestCreateOrderKeepsExplicitDueDate(t *testing.T) {
	book, _ := newBook(t, nil, nil)
	due := "2024-07-01"

	created, err := book.Create(context.Background(), CreateOrderRequest{
		Order: models.Order{CustomerName: "A", Phone: "1", CreatedOn: "2024-06-01", DueDate: &due, TotalAmount: decimal.NewFromInt(9)},
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-07-01", *created.DueDate)
	assert.Equal(t, "2024-06-01", created.CreatedOn)
	assert.True(t, decimal.NewFromInt(9).Equal(created.TotalAmount))
}

func TestCreateOrderSurvivesRemoteFailure(t *testing.T) {
	book, orders := newBook(t, &fakeRemote{err: errRemoteDown}, nil)
	ctx := context.Background()

	created, err := book.Create(ctx, CreateOrderRequest{Order: models.Order{CustomerName: "A", Phone: "1"}})
	require.NoError(t, err)
	_, ok := orders.GetByID(ctx, created.ID)
	assert.True(t, ok)
}

func TestCreateOrderValidation(t *testing.T) {
	book, orders := newBook(t, nil, nil)
	ctx := context.Background()

	cases := []models.Order{
		{Phone: "1"},
		{CustomerName: "A"},
		{CustomerName: "A", Phone: "1", Photos4x6: -1},
		{CustomerName: "A", Phone: "1", PaidAmount: decimal.NewFromInt(-5)},
		{CustomerName: "A", Phone: "1", Status: "shipped"},
	}
	for _, order := range cases {
		_, err := book.Create(ctx, CreateOrderRequest{Order: order})
		assert.True(t, models.IsValidation(err), "expected validation error for %+v", order)
	}
	assert.Len(t, orders.List(ctx), len(store.SeedOrders()))
}

func TestUpdateNotifiesOnReady(t *testing.T) {
	notifier := &fakeNotifier{}
	remote := &fakeRemote{}
	book, _ := newBook(t, remote, notifier)
	ctx := context.Background()

	updated, err := book.SetStatus(ctx, "OM-2024-0003", models.StatusReady)
	require.NoError(t, err)
	assert.Equal(t, models.StatusReady, updated.Status)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "OM-2024-0003", notifier.sent[0].ID)
	assert.Equal(t, []string{"OM-2024-0003"}, remote.patched)

	_, err = book.SetStatus(ctx, "OM-2024-0003", models.StatusReady)
	require.NoError(t, err)
	assert.Len(t, notifier.sent, 1)
}

func TestSetStatusLeavesTerminalStatus(t *testing.T) {
	book, _ := newBook(t, nil, nil)
	ctx := context.Background()

	_, err := book.SetStatus(ctx, "OM-2024-0002", models.StatusDelivered)
	require.NoError(t, err)
	reopened, err := book.SetStatus(ctx, "OM-2024-0002", models.StatusInProduction)
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProduction, reopened.Status)
}

func TestUpdateUnknownOrder(t *testing.T) {
	book, _ := newBook(t, nil, nil)
	status := models.StatusReady
	_, err := book.Update(context.Background(), models.OrderPatch{ID: "missing", Status: &status})
	assert.ErrorIs(t, err, models.ErrOrderNotFound)
}

func TestUpdateRejectsLooseDates(t *testing.T) {
	book, _ := newBook(t, nil, nil)
	ctx := context.Background()

	due := "next tuesday"
	_, err := book.Update(ctx, models.OrderPatch{ID: "OM-2024-0001", DueDate: &due})
	assert.True(t, models.IsValidation(err))

	created := "06/01/2024"
	_, err = book.Update(ctx, models.OrderPatch{ID: "OM-2024-0001", CreatedOn: &created})
	assert.True(t, models.IsValidation(err))
}

func TestAppendNoteAndTemplate(t *testing.T) {
	book, _ := newBook(t, nil, nil)
	ctx := context.Background()

	order, err := book.AppendNote(ctx, "OM-2024-0001", "first")
	require.NoError(t, err)
	assert.Equal(t, "first", order.Notes)

	order, err = book.AppendTemplate(ctx, "OM-2024-0001", 0)
	require.NoError(t, err)
	assert.Equal(t, "first\n"+models.DefaultSettings().NoteTemplates[0], order.Notes)

	_, err = book.AppendTemplate(ctx, "OM-2024-0001", 99)
	assert.True(t, models.IsValidation(err))
	_, err = book.AppendNote(ctx, "OM-2024-0001", "   ")
	assert.True(t, models.IsValidation(err))
}

func TestRefreshFromRemoteReplacesList(t *testing.T) {
	remote := &fakeRemote{orders: []models.Order{
		{ID: "r1", CustomerName: "Remote", Phone: "9", TotalAmount: decimal.NewFromInt(10), PaidAmount: decimal.NewFromInt(10)},
	}}
	book, orders := newBook(t, remote, nil)
	ctx := context.Background()

	result := book.RefreshFromRemote(ctx)
	assert.Equal(t, SyncIdle, result.State)
	assert.Empty(t, result.Error)
	require.Len(t, result.Orders, 1)
	assert.Equal(t, models.FullyPaid, result.Orders[0].PaymentStatus)
	assert.Equal(t, "r1", result.Orders[0].OrderCode)

	stored := orders.List(ctx)
	require.Len(t, stored, 1)
	assert.Equal(t, "r1", stored[0].ID)

	status := book.SyncStatus()
	assert.Equal(t, SyncIdle, status.State)
	require.NotNil(t, status.LastSynced)
	assert.Equal(t, testToday, *status.LastSynced)
}

func TestRefreshFromRemoteFailureKeepsLocal(t *testing.T) {
	book, orders := newBook(t, &fakeRemote{err: &backend.APIError{StatusCode: 500, Message: "boom"}}, nil)
	ctx := context.Background()

	result := book.RefreshFromRemote(ctx)
	assert.Equal(t, SyncError, result.State)
	assert.Contains(t, result.Error, "boom")
	assert.Len(t, result.Orders, len(store.SeedOrders()))
	assert.Len(t, orders.List(ctx), len(store.SeedOrders()))
	assert.Equal(t, SyncError, book.SyncStatus().State)
}

func TestRefreshFromRemoteCancelled(t *testing.T) {
	remote := &fakeRemote{orders: []models.Order{{ID: "r1"}}}
	book, orders := newBook(t, remote, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := book.RefreshFromRemote(ctx)
	assert.Equal(t, SyncError, result.State)
	assert.Equal(t, "Loading orders was cancelled", result.Error)
	assert.Len(t, orders.List(context.Background()), len(store.SeedOrders()))
}

func TestRefreshFromRemoteWithoutBackend(t *testing.T) {
	book, _ := newBook(t, nil, nil)
	result := book.RefreshFromRemote(context.Background())
	assert.Equal(t, SyncError, result.State)
	assert.NotEmpty(t, result.Orders)
}

func TestSyncStatusLoadingWhileInFlight(t *testing.T) {
	remote := &fakeRemote{release: make(chan struct{})}
	book, _ := newBook(t, remote, nil)

	done := make(chan SyncResult)
	go func() { done <- book.RefreshFromRemote(context.Background()) }()

	assert.Eventually(t, func() bool {
		return book.SyncStatus().State == SyncLoading
	}, time.Second, 5*time.Millisecond)

	close(remote.release)
	result := <-done
	assert.Equal(t, SyncIdle, result.State)
	assert.Equal(t, SyncIdle, book.SyncStatus().State)
}
