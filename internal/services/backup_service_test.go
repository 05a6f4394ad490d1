package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/export"
	"printshop/internal/models"
	"printshop/internal/store"
)

func newBackups(t *testing.T) (*backupService, *store.OrderStore, SettingsService) {
	t.Helper()
	kv, _ := newKV(t)
	orders := store.NewOrderStore(kv)
	settings := newSettings(t, kv)
	backups := NewBackupService(orders, settings).(*backupService)
	backups.now = func() time.Time { return testToday }
	return backups, orders, settings
}

func TestBackupExport(t *testing.T) {
	backups, _, _ := newBackups(t)
	backup := backups.Export(context.Background())

	assert.Equal(t, export.BackupVersion, backup.Version)
	assert.True(t, testToday.Equal(backup.ExportedAt))
	assert.Len(t, backup.Orders, len(store.SeedOrders()))
	require.NotNil(t, backup.Settings)
	assert.Equal(t, models.DefaultSettings().ShopName, backup.Settings.ShopName)
}

func TestBackupImportMerges(t *testing.T) {
	backups, orders, settings := newBackups(t)
	ctx := context.Background()

	data := []byte(`{
		"orders": [
			{"id": "OM-2024-0001", "customerName": "Renamed", "phone": "0501234567", "totalAmount": "80", "paidAmount": "0"},
			{"id": "OM-2023-0100", "customerName": "Old", "phone": "1", "totalAmount": "10", "paidAmount": "10"}
		],
		"settings": {"shopName": "Restored", "defaultDueDays": 2}
	}`)
	result, err := backups.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 1, result.Updated)
	assert.True(t, result.SettingsReplaced)

	renamed, ok := orders.GetByID(ctx, "OM-2024-0001")
	require.True(t, ok)
	assert.Equal(t, "Renamed", renamed.CustomerName)
	assert.Equal(t, models.Unpaid, renamed.PaymentStatus)

	old, ok := orders.GetByID(ctx, "OM-2023-0100")
	require.True(t, ok)
	assert.Equal(t, models.FullyPaid, old.PaymentStatus)
	assert.Equal(t, "OM-2023-0100", old.OrderCode)
	assert.Len(t, orders.List(ctx), len(store.SeedOrders())+1)

	assert.Equal(t, "Restored", settings.Get(ctx).ShopName)
}

func TestBackupImportRejectsInvalid(t *testing.T) {
	backups, orders, settings := newBackups(t)
	ctx := context.Background()

	_, err := backups.Import(ctx, []byte(`{"orders": [{"id": "x"}, {"customerName": "no id"}], "settings": {"shopName": "Nope"}}`))
	assert.ErrorIs(t, err, export.ErrInvalidBackup)
	_, ok := orders.GetByID(ctx, "x")
	assert.False(t, ok)
	assert.Equal(t, models.DefaultSettings().ShopName, settings.Get(ctx).ShopName)
}

// failingKV rejects writes to one key.
type failingKV struct {
	store.KV
	key string
}

func (f failingKV) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == f.key {
		return errors.New("write refused")
	}
	return f.KV.Set(ctx, key, value, ttl)
}

func newFailingBackups(t *testing.T, key string) (*backupService, *store.OrderStore, SettingsService) {
	t.Helper()
	kv, _ := newKV(t)
	broken := failingKV{KV: kv, key: key}
	backups := NewBackupService(store.NewOrderStore(broken), newSettings(t, broken)).(*backupService)
	return backups, store.NewOrderStore(kv), newSettings(t, kv)
}

const partialBackup = `{
	"orders": [{"id": "OM-2023-0100", "customerName": "Old", "phone": "1", "totalAmount": "10", "paidAmount": "10"}],
	"settings": {"shopName": "Restored"}
}`

func TestBackupImportKeepsPINAndPrices(t *testing.T) {
	backups, _, settings := newBackups(t)
	ctx := context.Background()

	result, err := backups.Import(ctx, []byte(`{"settings": {"shopName": "X"}}`))
	require.NoError(t, err)
	assert.True(t, result.SettingsReplaced)

	restored := settings.Get(ctx)
	assert.Equal(t, "X", restored.ShopName)
	assert.True(t, settings.VerifyPIN(ctx, "1234"))
	defaults := models.DefaultSettings()
	require.Len(t, restored.Prices, len(defaults.Prices))
	assert.True(t, defaults.Prices[models.Size4x6].Equal(restored.Prices[models.Size4x6]))
	assert.Equal(t, defaults.DefaultDueDays, restored.DefaultDueDays)
}

func TestBackupImportRejectsNegativePrice(t *testing.T) {
	backups, orders, settings := newBackups(t)
	ctx := context.Background()

	_, err := backups.Import(ctx, []byte(`{
		"orders": [{"id": "OM-2023-0100", "customerName": "Old", "totalAmount": "10", "paidAmount": "0"}],
		"settings": {"prices": {"A4": "-1"}}
	}`))
	assert.True(t, models.IsValidation(err))
	_, ok := orders.GetByID(ctx, "OM-2023-0100")
	assert.False(t, ok)
	assert.True(t, models.DefaultSettings().Prices[models.SizeA4].Equal(settings.Get(ctx).Prices[models.SizeA4]))
}

func TestBackupImportFailsWhenSettingsCannotBeWritten(t *testing.T) {
	backups, orders, settings := newFailingBackups(t, store.SettingsKey)
	ctx := context.Background()

	_, err := backups.Import(ctx, []byte(partialBackup))
	require.Error(t, err)
	_, ok := orders.GetByID(ctx, "OM-2023-0100")
	assert.False(t, ok)
	assert.Equal(t, models.DefaultSettings().ShopName, settings.Get(ctx).ShopName)
}

func TestBackupImportRollsBackSettings(t *testing.T) {
	backups, orders, settings := newFailingBackups(t, store.OrdersKey)
	ctx := context.Background()

	_, err := backups.Import(ctx, []byte(partialBackup))
	require.Error(t, err)
	_, ok := orders.GetByID(ctx, "OM-2023-0100")
	assert.False(t, ok)
	assert.Equal(t, models.DefaultSettings().ShopName, settings.Get(ctx).ShopName)
}

func TestBackupRoundTrip(t *testing.T) {
	source, _, _ := newBackups(t)
	ctx := context.Background()
	data, err := json.Marshal(source.Export(ctx))
	require.NoError(t, err)

	target, orders, _ := newBackups(t)
	result, err := target.Import(ctx, data)
	require.NoError(t, err)
	assert.Equal(t, len(store.SeedOrders()), result.Updated)
	assert.Len(t, orders.List(ctx), len(store.SeedOrders()))
}
