package services

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"printshop/internal/models"
	"printshop/internal/store"

	"golang.org/x/crypto/bcrypt"
)

type SettingsService interface {
	Get(ctx context.Context) models.Settings
	Save(ctx context.Context, settings models.Settings) (models.Settings, error)
	Replace(ctx context.Context, settings models.Settings) error
	VerifyPIN(ctx context.Context, pin string) bool
}

type settingsService struct {
	store *store.SettingsStore
}

func NewSettingsService(settingsStore *store.SettingsStore) SettingsService {
	return &settingsService{store: settingsStore}
}

func (s *settingsService) Get(ctx context.Context) models.Settings {
	return s.store.Load(ctx)
}

// Save validates and fully replaces the settings. An empty PIN keeps the
// current one; a new PIN is stored as a bcrypt hash.
func (s *settingsService) Save(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if err := validateSettings(settings); err != nil {
		return models.Settings{}, err
	}

	current := s.store.Load(ctx)
	switch {
	case settings.AdminPIN == "":
		settings.AdminPIN = current.AdminPIN
	case !isBcryptHash(settings.AdminPIN):
		hashed, err := bcrypt.GenerateFromPassword([]byte(settings.AdminPIN), bcrypt.DefaultCost)
		if err != nil {
			return models.Settings{}, fmt.Errorf("failed to hash PIN: %w", err)
		}
		settings.AdminPIN = string(hashed)
	}

	if err := s.store.Save(ctx, settings); err != nil {
		return models.Settings{}, fmt.Errorf("failed to save settings: %w", err)
	}
	return settings, nil
}

// Replace stores settings as given, used by backup import.
func (s *settingsService) Replace(ctx context.Context, settings models.Settings) error {
	return s.store.Save(ctx, settings)
}

func (s *settingsService) VerifyPIN(ctx context.Context, pin string) bool {
	if pin == "" {
		return false
	}
	stored := s.store.Load(ctx).AdminPIN
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(pin)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(pin)) == 1
}

func validateSettings(settings models.Settings) error {
	for size, price := range settings.Prices {
		if price.IsNegative() {
			return models.NewValidationError("price for " + size + " must not be negative")
		}
	}
	if settings.DefaultDueDays < 0 {
		return models.NewValidationError("defaultDueDays must not be negative")
	}
	return nil
}

func isBcryptHash(value string) bool {
	return strings.HasPrefix(value, "$2a$") || strings.HasPrefix(value, "$2b$") || strings.HasPrefix(value, "$2y$")
}
