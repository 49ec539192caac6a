package store

import (
	"context"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/prlsite/starters/internal/models"
	"github.com/prlsite/starters/internal/normalize"
)

// ClientDirectory owns the clients table: reusable name/contact/address
// profiles used to pre-fill the client section of a new starter.
type ClientDirectory struct {
	db *gorm.DB
	mu sync.Mutex
}

func NewClientDirectory(db *gorm.DB) *ClientDirectory {
	return &ClientDirectory{db: db}
}

// List returns all clients ordered by name, the order the capture form's
// dropdown shows them in.
func (d *ClientDirectory) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := d.db.WithContext(ctx).Order("name asc").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	return clients, nil
}

// Lookup finds a client by exact, case-sensitive name.
func (d *ClientDirectory) Lookup(ctx context.Context, name string) (*models.Client, error) {
	var client models.Client
	if err := d.db.WithContext(ctx).Where("name = ?", name).First(&client).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lookup client %q: %w", name, err)
	}
	return &client, nil
}

// UpsertIfAbsent inserts the client only when no client with that exact
// name exists. The existing entry always wins; re-running a capture flow
// that references a known name is a no-op, never an error. Returns
// whether an insert happened.
func (d *ClientDirectory) UpsertIfAbsent(ctx context.Context, name, contact, address string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	name = normalize.Text(name)
	inserted := false
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Client{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return fmt.Errorf("upsert client %q: %w", name, err)
		}
		if count > 0 {
			return nil
		}
		client := models.Client{
			Name:    name,
			Contact: normalize.Text(contact),
			Address: normalize.Text(address),
		}
		if err := tx.Create(&client).Error; err != nil {
			return fmt.Errorf("upsert client %q: %w", name, err)
		}
		inserted = true
		return nil
	})
	return inserted, err
}
