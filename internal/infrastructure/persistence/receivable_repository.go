package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
)

// GormReceivableRepository implements ReceivableRepository using GORM
type GormReceivableRepository struct {
	db *gorm.DB
}

// NewGormReceivableRepository creates a new GormReceivableRepository
func NewGormReceivableRepository(db *gorm.DB) *GormReceivableRepository {
	return &GormReceivableRepository{db: db}
}

// FindByID finds a receivable by its ID
func (r *GormReceivableRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Receivable, error) {
	var model models.ReceivableModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySale returns every receivable of a sale ordered by installment
func (r *GormReceivableRepository) FindBySale(ctx context.Context, saleID uuid.UUID) ([]*ledger.Receivable, error) {
	var receivableModels []models.ReceivableModel
	if err := r.db.WithContext(ctx).
		Where("sale_id = ?", saleID).
		Order("installment ASC").
		Find(&receivableModels).Error; err != nil {
		return nil, err
	}

	receivables := make([]*ledger.Receivable, len(receivableModels))
	for i := range receivableModels {
		receivables[i] = receivableModels[i].ToDomain()
	}
	return receivables, nil
}

// FindDueBetween returns receivables whose due date falls inside the
// inclusive window, ordered by due date.
func (r *GormReceivableRepository) FindDueBetween(ctx context.Context, from, to time.Time, filter shared.Filter) ([]*ledger.Receivable, error) {
	query := r.db.WithContext(ctx).Model(&models.ReceivableModel{}).
		Where("due_date >= ? AND due_date <= ?", from, to)

	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var receivableModels []models.ReceivableModel
	if err := query.Order("due_date ASC, installment ASC").Find(&receivableModels).Error; err != nil {
		return nil, err
	}

	receivables := make([]*ledger.Receivable, len(receivableModels))
	for i := range receivableModels {
		receivables[i] = receivableModels[i].ToDomain()
	}
	return receivables, nil
}

// CreateBatch inserts a batch of receivables
func (r *GormReceivableRepository) CreateBatch(ctx context.Context, receivables []*ledger.Receivable) error {
	if len(receivables) == 0 {
		return nil
	}
	receivableModels := make([]models.ReceivableModel, len(receivables))
	for i, receivable := range receivables {
		receivableModels[i] = *models.ReceivableModelFromDomain(receivable)
	}
	return r.db.WithContext(ctx).Create(&receivableModels).Error
}

// Save persists the receivable with an optimistic-lock version check
func (r *GormReceivableRepository) Save(ctx context.Context, receivable *ledger.Receivable) error {
	currentVersion := receivable.Version
	receivable.Version++
	receivable.UpdatedAt = time.Now()

	model := models.ReceivableModelFromDomain(receivable)
	result := r.db.WithContext(ctx).Model(&models.ReceivableModel{}).
		Where("id = ? AND version = ?", receivable.ID, currentVersion).
		Updates(map[string]interface{}{
			"installment": model.Installment,
			"amount":      model.Amount,
			"paid_amount": model.PaidAmount,
			"due_date":    model.DueDate,
			"status":      model.Status,
			"paid_at":     model.PaidAt,
			"version":     model.Version,
			"updated_at":  model.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// DeleteBatch removes the receivables with the given IDs
func (r *GormReceivableRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.ReceivableModel{}).Error
}

var _ ledger.ReceivableRepository = (*GormReceivableRepository)(nil)
