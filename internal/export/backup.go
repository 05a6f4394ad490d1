package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"printshop/internal/models"
)

const BackupVersion = 1

var ErrInvalidBackup = errors.New("invalid backup file")

type Backup struct {
	Version    int              `json:"version"`
	ExportedAt time.Time        `json:"exportedAt"`
	Orders     []models.Order   `json:"orders"`
	Settings   *models.Settings `json:"settings,omitempty"`

	settingsRaw json.RawMessage
}

// ParseBackup decodes a backup document. The root must be a JSON object;
// orders and settings, when present, must be an array and an object.
func ParseBackup(data []byte) (*Backup, error) {
	var root map[string]json.RawMessage
	if err := json.Unmarshal(data, &root); err != nil || root == nil {
		return nil, fmt.Errorf("%w: root must be a JSON object", ErrInvalidBackup)
	}

	if raw, ok := root["orders"]; ok && !isJSONKind(raw, '[') {
		return nil, fmt.Errorf("%w: orders must be an array", ErrInvalidBackup)
	}
	if raw, ok := root["settings"]; ok && !isJSONKind(raw, '{') && !bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, fmt.Errorf("%w: settings must be an object", ErrInvalidBackup)
	}

	var backup Backup
	if err := json.Unmarshal(data, &backup); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	for i, o := range backup.Orders {
		if o.ID == "" {
			return nil, fmt.Errorf("%w: order #%d has no id", ErrInvalidBackup, i+1)
		}
	}
	if backup.Settings != nil {
		backup.settingsRaw = root["settings"]
	}
	return &backup, nil
}

// SettingsOnto overlays the backup's settings onto base, so keys missing
// from the file keep their current value. An empty PIN or a null price
// list also keeps the current one. ok is false when the backup has no
// settings.
func (b *Backup) SettingsOnto(base models.Settings) (settings models.Settings, ok bool, err error) {
	if b.Settings == nil {
		return base, false, nil
	}
	raw := b.settingsRaw
	if raw == nil {
		if raw, err = json.Marshal(b.Settings); err != nil {
			return base, false, err
		}
	}

	out := base.Clone()
	out.Prices = nil
	if err := json.Unmarshal(raw, &out); err != nil {
		return base, false, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if out.AdminPIN == "" {
		out.AdminPIN = base.AdminPIN
	}
	if out.Prices == nil {
		out.Prices = base.Clone().Prices
	}
	return out, true, nil
}

func isJSONKind(raw json.RawMessage, open byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == open
}
