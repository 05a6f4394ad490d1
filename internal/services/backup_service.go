package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"printshop/internal/export"
	"printshop/internal/store"
)

type ImportResult struct {
	Inserted         int  `json:"inserted"`
	Updated          int  `json:"updated"`
	SettingsReplaced bool `json:"settingsReplaced"`
}

type BackupService interface {
	Export(ctx context.Context) export.Backup
	Import(ctx context.Context, data []byte) (*ImportResult, error)
}

type backupService struct {
	orders   *store.OrderStore
	settings SettingsService
	now      func() time.Time
}

func NewBackupService(orders *store.OrderStore, settings SettingsService) BackupService {
	return &backupService{orders: orders, settings: settings, now: time.Now}
}

func (s *backupService) Export(ctx context.Context) export.Backup {
	settings := s.settings.Get(ctx)
	return export.Backup{
		Version:    export.BackupVersion,
		ExportedAt: s.now().UTC(),
		Orders:     s.orders.List(ctx),
		Settings:   &settings,
	}
}

// Import validates the whole document before writing anything. Settings
// are written first and restored if the orders cannot be stored, so a
// failed import leaves both unchanged.
func (s *backupService) Import(ctx context.Context, data []byte) (*ImportResult, error) {
	backup, err := export.ParseBackup(data)
	if err != nil {
		return nil, err
	}
	for i := range backup.Orders {
		backup.Orders[i].ApplyDefaults()
		backup.Orders[i].RefreshPaymentStatus()
	}

	current := s.settings.Get(ctx)
	settings, hasSettings, err := backup.SettingsOnto(current)
	if err != nil {
		return nil, err
	}
	if hasSettings {
		if err := validateSettings(settings); err != nil {
			return nil, err
		}
	}

	result := &ImportResult{}
	if hasSettings {
		if err := s.settings.Replace(ctx, settings); err != nil {
			return nil, fmt.Errorf("failed to restore settings: %w", err)
		}
		result.SettingsReplaced = true
	}
	if len(backup.Orders) > 0 {
		result.Inserted, result.Updated, err = s.orders.Merge(ctx, backup.Orders)
		if err != nil {
			if hasSettings {
				if rerr := s.settings.Replace(ctx, current); rerr != nil {
					log.Printf("Warning: failed to roll back settings: %v", rerr)
				}
			}
			return nil, fmt.Errorf("failed to import orders: %w", err)
		}
	}
	log.Printf("Backup imported: %d inserted, %d updated", result.Inserted, result.Updated)
	return result, nil
}
