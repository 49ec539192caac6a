package store

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/prlsite/starters/internal/models"
	"github.com/prlsite/starters/internal/normalize"
)

// StarterStore owns the starters table. Writes are serialized by a single
// mutex; the expected load is one operator at a time, so contention is not
// a concern, only interleaving correctness is.
type StarterStore struct {
	db  *gorm.DB
	log *zap.Logger
	mu  sync.Mutex
	now func() time.Time
}

func NewStarterStore(db *gorm.DB, log *zap.Logger) *StarterStore {
	return &StarterStore{db: db, log: log, now: time.Now}
}

// Insert assigns the next id and stores the normalized fields. The
// generated date is stamped to today when the caller left it blank.
func (s *StarterStore) Insert(ctx context.Context, rec *models.Starter) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec.ID = 0
	normalize.Starter(rec)
	if rec.GeneratedDate == "" {
		rec.GeneratedDate = s.now().Format(normalize.CanonicalDateLayout)
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return 0, fmt.Errorf("insert starter: %w", err)
	}
	return rec.ID, nil
}

// List returns every record in ascending id order. Insertion order is what
// the list view and the reconcile diff both key on.
func (s *StarterStore) List(ctx context.Context) ([]models.Starter, error) {
	var recs []models.Starter
	if err := s.db.WithContext(ctx).Order("id asc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list starters: %w", err)
	}
	return recs, nil
}

func (s *StarterStore) Get(ctx context.Context, id uint) (*models.Starter, error) {
	var rec models.Starter
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get starter %d: %w", id, err)
	}
	return &rec, nil
}

// Update replaces every attribute of the record with the given fields.
// The id itself is immutable.
func (s *StarterStore) Update(ctx context.Context, id uint, fields models.Starter) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.update(s.db.WithContext(ctx), id, fields)
}

func (s *StarterStore) update(tx *gorm.DB, id uint, fields models.Starter) error {
	var existing models.Starter
	if err := tx.First(&existing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("update starter %d: %w", id, err)
	}
	normalize.Starter(&fields)
	fields.ID = id
	if err := tx.Save(&fields).Error; err != nil {
		return fmt.Errorf("update starter %d: %w", id, err)
	}
	return nil
}

// Delete removes the record; deleting an absent id is a no-op success.
func (s *StarterStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.db.WithContext(ctx).Delete(&models.Starter{}, id).Error; err != nil {
		return fmt.Errorf("delete starter %d: %w", id, err)
	}
	return nil
}

// Deduplicate removes exact full-row duplicates, keeping the smallest id
// of each group. NULL and empty string compare equal, so legacy rows with
// absent fields still collide with present-but-empty ones. Safe to run
// repeatedly; the second pass removes nothing.
func (s *StarterStore) Deduplicate(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groupBy := make([]string, len(models.Columns))
	for i, col := range models.Columns {
		groupBy[i] = fmt.Sprintf("COALESCE(%s, '')", col)
	}
	stmt := fmt.Sprintf(
		"DELETE FROM starters WHERE id NOT IN (SELECT MIN(id) FROM starters GROUP BY %s)",
		strings.Join(groupBy, ", "),
	)
	res := s.db.WithContext(ctx).Exec(stmt)
	if res.Error != nil {
		return 0, fmt.Errorf("deduplicate starters: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.log.Info("removed duplicate starters", zap.Int64("count", res.RowsAffected))
	}
	return res.RowsAffected, nil
}

// ReconcileSummary reports what a bulk edit round-trip changed.
type ReconcileSummary struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	Skipped  int `json:"skipped"`
}

// Reconcile applies a full replacement row set from the edit view in one
// transaction: rows without an id are inserts, rows with a known id are
// updates, and stored ids absent from the set are deletes. A row carrying
// an unknown non-zero id is skipped rather than resurrected, and the rest
// of the batch still applies; the skip count travels in the summary.
func (s *StarterStore) Reconcile(ctx context.Context, rows []models.Starter) (ReconcileSummary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum ReconcileSummary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []models.Starter
		if err := tx.Order("id asc").Find(&existing).Error; err != nil {
			return fmt.Errorf("reconcile: load current set: %w", err)
		}
		known := make(map[uint]bool, len(existing))
		for _, rec := range existing {
			known[rec.ID] = true
		}

		seen := make(map[uint]bool, len(rows))
		for _, row := range rows {
			if row.ID == 0 {
				rec := row
				normalize.Starter(&rec)
				if rec.GeneratedDate == "" {
					rec.GeneratedDate = s.now().Format(normalize.CanonicalDateLayout)
				}
				if err := tx.Create(&rec).Error; err != nil {
					return fmt.Errorf("reconcile: insert row: %w", err)
				}
				sum.Inserted++
				continue
			}
			if !known[row.ID] {
				s.log.Warn("reconcile: skipping row with unknown id", zap.Uint("id", row.ID))
				sum.Skipped++
				continue
			}
			seen[row.ID] = true
			if err := s.update(tx, row.ID, row); err != nil {
				return err
			}
			sum.Updated++
		}

		for _, rec := range existing {
			if seen[rec.ID] {
				continue
			}
			if err := tx.Delete(&models.Starter{}, rec.ID).Error; err != nil {
				return fmt.Errorf("reconcile: delete %d: %w", rec.ID, err)
			}
			sum.Deleted++
		}
		return nil
	})
	if err != nil {
		return ReconcileSummary{}, err
	}
	return sum, nil
}
