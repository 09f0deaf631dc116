package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-screener/internal/models"
)

var ErrRunNotFound = errors.New("screening run not found")

type ScreeningRunRepository interface {
	Create(run *models.ScreeningRun) error
	FindByID(id uuid.UUID) (*models.ScreeningRun, error)
	UpdateResult(id uuid.UUID, data *RunUpdateData) error
	UpdateError(id uuid.UUID, data *RunUpdateData, errorMsg string) error
}

type RunUpdateData struct {
	ProcessedCount    int
	ParseFailureCount int
}

type screeningRunRepository struct {
	db *gorm.DB
}

func NewScreeningRunRepository(db *gorm.DB) ScreeningRunRepository {
	return &screeningRunRepository{db: db}
}

func (r *screeningRunRepository) Create(run *models.ScreeningRun) error {
	if err := r.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create screening run: %w", err)
	}
	return nil
}

func (r *screeningRunRepository) FindByID(id uuid.UUID) (*models.ScreeningRun, error) {
	var run models.ScreeningRun
	if err := r.db.Where("id = ?", id).First(&run).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRunNotFound
		}
		return nil, fmt.Errorf("failed to find screening run: %w", err)
	}
	return &run, nil
}

func (r *screeningRunRepository) UpdateResult(id uuid.UUID, data *RunUpdateData) error {
	return r.update(id, map[string]interface{}{
		"status":              models.StatusCompleted,
		"processed_count":     data.ProcessedCount,
		"parse_failure_count": data.ParseFailureCount,
		"updated_at":          time.Now(),
	})
}

func (r *screeningRunRepository) UpdateError(id uuid.UUID, data *RunUpdateData, errorMsg string) error {
	return r.update(id, map[string]interface{}{
		"status":              models.StatusFailed,
		"processed_count":     data.ProcessedCount,
		"parse_failure_count": data.ParseFailureCount,
		"error_message":       errorMsg,
		"updated_at":          time.Now(),
	})
}

func (r *screeningRunRepository) update(id uuid.UUID, updates map[string]interface{}) error {
	result := r.db.Model(&models.ScreeningRun{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update screening run: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrRunNotFound
	}

	return nil
}

// noopRunRepository is used when no database is configured.
type noopRunRepository struct{}

func NewNoopScreeningRunRepository() ScreeningRunRepository {
	return noopRunRepository{}
}

func (noopRunRepository) Create(*models.ScreeningRun) error { return nil }

func (noopRunRepository) FindByID(uuid.UUID) (*models.ScreeningRun, error) {
	return nil, ErrRunNotFound
}

func (noopRunRepository) UpdateResult(uuid.UUID, *RunUpdateData) error { return nil }

func (noopRunRepository) UpdateError(uuid.UUID, *RunUpdateData, string) error { return nil }
