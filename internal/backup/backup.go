// Package backup exports all resources into a single JSON document and
// restores them from it. Backups can be sealed with a passphrase.
package backup

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ledgerline/backend/internal/models"
	"github.com/ryanuber/go-glob"
	"gorm.io/gorm"
)

var (
	ErrInvalidBackup      = errors.New("the backup could not be parsed")
	ErrUnknownModel       = errors.New("the backup contains an unknown resource type")
	ErrPassphraseRequired = errors.New("the backup is encrypted, a passphrase is required")
)

// Backup is the document that holds all exported resources.
type Backup struct {
	Version      string                     `json:"version" example:"1.4.0"`                     // Version of the backend that created the backup
	CreationTime time.Time                  `json:"creationTime" example:"2024-05-01T12:00:00Z"` // Time the backup was created
	Data         map[string]json.RawMessage `json:"data"`                                        // Resources by model name
}

// Create exports the models matching any of the include patterns. Without
// patterns, all models are exported.
func Create(version string, include []string) (Backup, error) {
	b := Backup{
		Version:      version,
		CreationTime: time.Now().UTC(),
		Data:         make(map[string]json.RawMessage),
	}

	for _, model := range models.Registry {
		name := models.Name(model)
		if !included(name, include) {
			continue
		}

		data, err := model.Export()
		if err != nil {
			return Backup{}, err
		}

		b.Data[name] = data
	}

	return b, nil
}

func included(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}

	for _, pattern := range patterns {
		if glob.Glob(pattern, name) {
			return true
		}
	}
	return false
}

// Marshal encodes the backup, sealed with the passphrase unless it is empty.
func Marshal(b Backup, passphrase string) ([]byte, error) {
	data, err := json.Marshal(b)
	if err != nil {
		return nil, err
	}

	if passphrase == "" {
		return data, nil
	}

	return Encrypt(passphrase, data)
}

// Parse decodes a backup, opening it with the passphrase if it is sealed.
func Parse(data []byte, passphrase string) (Backup, error) {
	if IsEncrypted(data) {
		if passphrase == "" {
			return Backup{}, ErrPassphraseRequired
		}

		var err error
		data, err = Decrypt(passphrase, data)
		if err != nil {
			return Backup{}, err
		}
	}

	var b Backup
	if err := json.Unmarshal(data, &b); err != nil {
		return Backup{}, fmt.Errorf("%w: %w", ErrInvalidBackup, err)
	}

	if b.Data == nil {
		return Backup{}, fmt.Errorf("%w: no data", ErrInvalidBackup)
	}

	return b, nil
}

// Restore replaces all resources with the ones in the backup.
//
// All tables are emptied, the restore is done in a single transaction.
// Models missing in the backup stay empty.
func Restore(db *gorm.DB, b Backup) error {
	known := make(map[string]bool, len(models.Registry))
	for _, model := range models.Registry {
		known[models.Name(model)] = true
	}

	for name := range b.Data {
		if !known[name] {
			return fmt.Errorf("%w: %s", ErrUnknownModel, name)
		}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		err := models.Wipe(tx)
		if err != nil {
			return err
		}

		for _, model := range models.Registry {
			data, ok := b.Data[models.Name(model)]
			if !ok {
				continue
			}

			err := model.Import(tx, data)
			if err != nil {
				return err
			}
		}

		return nil
	})
}
