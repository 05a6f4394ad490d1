package store

import (
	"context"

	"printshop/internal/models"
)

const SettingsKey = "settings"

// SettingsStore reads the shop settings merged over defaults and replaces
// them wholesale on save.
type SettingsStore struct {
	slot *Slot[models.Settings]
}

func NewSettingsStore(kv KV, defaults models.Settings) *SettingsStore {
	return &SettingsStore{slot: NewSlot(kv, SettingsKey, defaults.Clone, true)}
}

func (s *SettingsStore) Load(ctx context.Context) models.Settings {
	return s.slot.Load(ctx)
}

func (s *SettingsStore) Save(ctx context.Context, settings models.Settings) error {
	return s.slot.Save(ctx, settings)
}
