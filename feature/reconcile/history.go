package reconcile

import (
	"context"
	"errors"
	"fmt"

	apperrors "master-sync/core/errors"
	"master-sync/feature/reconcile/models"

	"gorm.io/gorm"
)

// ErrHistoryDisabled is returned by history lookups when no database is
// configured.
var ErrHistoryDisabled = errors.New("run history is disabled")

// DefaultHistoryLimit caps run listings when the caller gives no limit.
const DefaultHistoryLimit = 50

// History persists completed runs.
type History struct {
	db *gorm.DB
}

// NewHistory wraps db. A nil db yields a disabled history.
func NewHistory(db *gorm.DB) *History {
	return &History{db: db}
}

// Enabled reports whether runs are persisted.
func (h *History) Enabled() bool {
	return h != nil && h.db != nil
}

// Migrate creates or updates the runs table.
func (h *History) Migrate() error {
	if !h.Enabled() {
		return ErrHistoryDisabled
	}
	return h.db.AutoMigrate(&models.Run{})
}

// Record stores a run. It is a no-op when history is disabled.
func (h *History) Record(ctx context.Context, run *models.Run) error {
	if !h.Enabled() {
		return nil
	}
	if err := h.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record run %s: %w", run.ID, err)
	}
	return nil
}

// List returns the most recent runs first.
func (h *History) List(ctx context.Context, limit int) ([]models.Run, error) {
	if !h.Enabled() {
		return nil, ErrHistoryDisabled
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var runs []models.Run
	if err := h.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run by id.
func (h *History) Get(ctx context.Context, id string) (*models.Run, error) {
	if !h.Enabled() {
		return nil, ErrHistoryDisabled
	}
	var run models.Run
	err := h.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFoundError("run", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	return &run, nil
}
