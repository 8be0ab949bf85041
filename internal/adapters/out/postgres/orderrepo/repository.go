package orderrepo

import (
	"context"
	"errors"
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements the order repository port using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save upserts an order and rewrites its line rows in one transaction.
// Lines are replaced wholesale; they are immutable in the domain, so the
// rewrite only matters on first insert, but doing it unconditionally keeps
// Save idempotent.
func (r *GormOrderRepository) Save(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	items := dto.Items
	dto.Items = nil

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&dto).Error; err != nil {
			return err
		}

		if err := tx.Where("order_id = ?", dto.ID).Delete(&OrderItemDTO{}).Error; err != nil {
			return err
		}

		return tx.Create(&items).Error
	})
}

// FindByID retrieves an order with its lines by identifier.
func (r *GormOrderRepository) FindByID(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindAll retrieves every order, oldest first.
func (r *GormOrderRepository) FindAll(ctx context.Context) ([]*order.Order, error) {
	return r.findWhere(ctx, "")
}

// FindByStatus retrieves all orders in the given lifecycle status.
func (r *GormOrderRepository) FindByStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return r.findWhere(ctx, "status = ?", status.String())
}

// FindByType retrieves all orders of the given fulfillment type.
func (r *GormOrderRepository) FindByType(ctx context.Context, orderType order.Type) ([]*order.Order, error) {
	if err := orderType.Validate(); err != nil {
		return nil, err
	}

	return r.findWhere(ctx, "order_type = ?", orderType.String())
}

// FindByCreatedAtBetween retrieves orders created in [start, end].
func (r *GormOrderRepository) FindByCreatedAtBetween(
	ctx context.Context, start, end time.Time,
) ([]*order.Order, error) {
	return r.findWhere(ctx, "created_at BETWEEN ? AND ?", start, end)
}

// DeleteByID removes an order and its lines, reporting whether it existed.
func (r *GormOrderRepository) DeleteByID(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id.Bytes()).Delete(&OrderItemDTO{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&OrderDTO{}, "id = ?", id.Bytes())
		if result.Error != nil {
			return result.Error
		}

		deleted = result.RowsAffected > 0
		return nil
	})

	return deleted, err
}

// ExistsByID reports whether an order with the given id is stored.
func (r *GormOrderRepository) ExistsByID(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// findWhere loads orders matching the condition, oldest first, with lines
// preloaded in stable order.
func (r *GormOrderRepository) findWhere(
	ctx context.Context, condition string, args ...any,
) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Order("created_at")
	if condition != "" {
		query = query.Where(condition, args...)
	}

	var dtos []OrderDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
