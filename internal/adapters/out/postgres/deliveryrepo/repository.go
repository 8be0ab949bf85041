package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"
	"coffeeshop/internal/core/ports"
	"coffeeshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDeliveryRepository implements the delivery repository port using
// GORM. It depends on the order repository to rebuild the wrapped order
// back-references when loading aggregates.
type GormDeliveryRepository struct {
	db     *gorm.DB
	orders ports.OrderRepository
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, orders ports.OrderRepository) *GormDeliveryRepository {
	return &GormDeliveryRepository{db: db, orders: orders}
}

// Save upserts a delivery and its item rows in one transaction. New item
// rows insert against the order_id primary key, so saving a delivery whose
// order already belongs to another delivery fails atomically.
func (r *GormDeliveryRepository) Save(ctx context.Context, aggregate *delivery.Delivery) error {
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

		for _, item := range items {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "order_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"item_status"}),
				Where: clause.Where{Exprs: []clause.Expression{
					clause.Eq{Column: clause.Column{Table: "delivery_items", Name: "delivery_id"}, Value: item.DeliveryID},
				}},
			}).Create(&item).Error; err != nil {
				return err
			}

			// A conflicting row held by another delivery is not updated
			// by the guarded upsert; detect and reject it.
			var owner DeliveryItemDTO
			if err := tx.First(&owner, "order_id = ?", item.OrderID).Error; err != nil {
				return err
			}
			if owner.DeliveryID != item.DeliveryID {
				return errs.NewValueIsInvalidErrorWithCause("delivery orders",
					errors.New("order already belongs to another delivery"))
			}
		}

		return nil
	})
}

// FindByID retrieves a delivery with its items and wrapped orders.
func (r *GormDeliveryRepository) FindByID(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("delivery_items.position") }).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return r.restore(ctx, dto)
}

// FindByStatus retrieves all deliveries in the given lifecycle status.
func (r *GormDeliveryRepository) FindByStatus(
	ctx context.Context, status delivery.Status,
) ([]*delivery.Delivery, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	return r.findWhere(ctx, "status = ?", status.String())
}

// FindByRiderID retrieves all deliveries assigned to the given rider.
func (r *GormDeliveryRepository) FindByRiderID(ctx context.Context, riderID string) ([]*delivery.Delivery, error) {
	if riderID == "" {
		return nil, errs.NewValueIsRequiredError("rider id")
	}

	return r.findWhere(ctx, "rider_id = ?", riderID)
}

// FindByOrderID retrieves the delivery holding the given order via the
// delivery_items index.
func (r *GormDeliveryRepository) FindByOrderID(
	ctx context.Context, orderID kernel.UUID,
) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var item DeliveryItemDTO
	err := r.db.WithContext(ctx).First(&item, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery by order", orderID.String())
		}
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(item.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	return r.FindByID(ctx, deliveryID)
}

// FindActiveDeliveries retrieves all deliveries currently underway.
func (r *GormDeliveryRepository) FindActiveDeliveries(ctx context.Context) ([]*delivery.Delivery, error) {
	return r.findWhere(ctx, "status IN (?, ?, ?)",
		delivery.StatusAssigned.String(),
		delivery.StatusPickedUp.String(),
		delivery.StatusInTransit.String(),
	)
}

// FindDeliveriesBetween retrieves deliveries created in [start, end].
func (r *GormDeliveryRepository) FindDeliveriesBetween(
	ctx context.Context, start, end time.Time,
) ([]*delivery.Delivery, error) {
	return r.findWhere(ctx, "created_at BETWEEN ? AND ?", start, end)
}

// FindAll retrieves every delivery, oldest first.
func (r *GormDeliveryRepository) FindAll(ctx context.Context) ([]*delivery.Delivery, error) {
	return r.findWhere(ctx, "")
}

// DeleteByID removes a delivery and its items, reporting whether it
// existed.
func (r *GormDeliveryRepository) DeleteByID(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("delivery_id = ?", id.Bytes()).Delete(&DeliveryItemDTO{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&DeliveryDTO{}, "id = ?", id.Bytes())
		if result.Error != nil {
			return result.Error
		}

		deleted = result.RowsAffected > 0
		return nil
	})

	return deleted, err
}

// ExistsByID reports whether a delivery with the given id is stored.
func (r *GormDeliveryRepository) ExistsByID(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).Where("id = ?", id.Bytes()).Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// findWhere loads deliveries matching the condition, oldest first.
func (r *GormDeliveryRepository) findWhere(
	ctx context.Context, condition string, args ...any,
) ([]*delivery.Delivery, error) {
	query := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("delivery_items.position") }).
		Order("created_at")
	if condition != "" {
		query = query.Where(condition, args...)
	}

	var dtos []DeliveryDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := r.restore(ctx, dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}

// restore loads the wrapped orders for a delivery row and rebuilds the
// aggregate.
func (r *GormDeliveryRepository) restore(ctx context.Context, dto DeliveryDTO) (*delivery.Delivery, error) {
	orders := make(map[uuid.UUID]*order.Order, len(dto.Items))
	for _, item := range dto.Items {
		orderID, err := kernel.UUIDFromBytes(item.OrderID[:])
		if err != nil {
			return nil, err
		}

		ord, err := r.orders.FindByID(ctx, orderID)
		if err != nil {
			return nil, err
		}
		orders[item.OrderID] = ord
	}

	return toDomain(dto, orders)
}
