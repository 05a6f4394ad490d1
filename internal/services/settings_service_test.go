package services

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/models"
)

func TestSettingsSaveHashesPIN(t *testing.T) {
	kv, _ := newKV(t)
	settings := newSettings(t, kv)
	ctx := context.Background()

	assert.True(t, settings.VerifyPIN(ctx, "1234"))

	next := settings.Get(ctx)
	next.AdminPIN = "9876"
	next.ShopName = "Studio"
	saved, err := settings.Save(ctx, next)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(saved.AdminPIN, "$2"))

	assert.Equal(t, "Studio", settings.Get(ctx).ShopName)
	assert.True(t, settings.VerifyPIN(ctx, "9876"))
	assert.False(t, settings.VerifyPIN(ctx, "1234"))
	assert.False(t, settings.VerifyPIN(ctx, ""))
}

func TestSettingsSaveKeepsPINWhenEmpty(t *testing.T) {
	kv, _ := newKV(t)
	settings := newSettings(t, kv)
	ctx := context.Background()

	next := settings.Get(ctx).Public()
	next.DefaultDueDays = 7
	_, err := settings.Save(ctx, next)
	require.NoError(t, err)

	assert.Equal(t, 7, settings.Get(ctx).DefaultDueDays)
	assert.True(t, settings.VerifyPIN(ctx, "1234"))
}

func TestSettingsSaveValidation(t *testing.T) {
	kv, _ := newKV(t)
	settings := newSettings(t, kv)
	ctx := context.Background()

	bad := models.DefaultSettings()
	bad.Prices[models.SizeA4] = decimal.NewFromInt(-1)
	_, err := settings.Save(ctx, bad)
	assert.True(t, models.IsValidation(err))

	bad = models.DefaultSettings()
	bad.DefaultDueDays = -2
	_, err = settings.Save(ctx, bad)
	assert.True(t, models.IsValidation(err))
}
