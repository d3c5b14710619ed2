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

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale with its items by ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).Preload("Items").First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNumber finds a sale by its sale number
func (r *GormSaleRepository) FindByNumber(ctx context.Context, number string) (*ledger.Sale, error) {
	var model models.SaleModel
	if err := r.db.WithContext(ctx).Preload("Items").
		First(&model, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all sales matching the filter
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]ledger.Sale, error) {
	var saleModels []models.SaleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SaleModel{}).Preload("Items"), filter)

	if err := query.Find(&saleModels).Error; err != nil {
		return nil, err
	}

	sales := make([]ledger.Sale, len(saleModels))
	for i, model := range saleModels {
		sales[i] = *model.ToDomain()
	}
	return sales, nil
}

// Count counts the sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.SaleModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new sale together with its items
func (r *GormSaleRepository) Create(ctx context.Context, sale *ledger.Sale) error {
	model := models.SaleModelFromDomain(sale)
	return r.db.WithContext(ctx).Create(model).Error
}

// Save persists the sale with an optimistic-lock version check. The items
// are re-synced in the same transaction.
func (r *GormSaleRepository) Save(ctx context.Context, sale *ledger.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := sale.Version
		sale.Version++
		sale.UpdatedAt = time.Now()

		model := models.SaleModelFromDomain(sale)
		result := tx.Model(&models.SaleModel{}).
			Where("id = ? AND version = ?", sale.ID, currentVersion).
			Updates(map[string]interface{}{
				"customer_id":              model.CustomerID,
				"customer_name":            model.CustomerName,
				"subtotal":                 model.Subtotal,
				"discount_percent":         model.DiscountPercent,
				"discount_amount":          model.DiscountAmount,
				"total":                    model.Total,
				"net_total":                model.NetTotal,
				"paid_amount":              model.PaidAmount,
				"status":                   model.Status,
				"installment_plan":         model.InstallmentPlan,
				"fixed_installment_amount": model.FixedInstallmentAmount,
				"payment_day":              model.PaymentDay,
				"version":                  model.Version,
				"updated_at":               model.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}

		// Re-sync items: drop removed lines, upsert the rest.
		currentItemIDs := make([]uuid.UUID, len(model.Items))
		for i, item := range model.Items {
			currentItemIDs[i] = item.ID
		}
		itemQuery := tx.Where("sale_id = ?", sale.ID)
		if len(currentItemIDs) > 0 {
			itemQuery = itemQuery.Where("id NOT IN ?", currentItemIDs)
		}
		if err := itemQuery.Delete(&models.SaleItemModel{}).Error; err != nil {
			return err
		}
		for i := range model.Items {
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR LOWER(customer_name) LIKE LOWER(?)",
			searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("sale_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("sale_date <= ?", t)
			}
		}
	}

	return query
}

var _ ledger.SaleRepository = (*GormSaleRepository)(nil)
