// Package deliveryrepo provides data transfer objects and mapping
// functions for delivery persistence. It implements the delivery
// repository port over PostgreSQL.
//
// The delivery_items table keys on order_id alone: the database itself
// guarantees that an order belongs to at most one delivery, which is the
// consistency contract the batching engine's check-then-create sequence
// relies on.
package deliveryrepo

import (
	"time"

	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery
// aggregates. Rider columns are nil until a rider is assigned.
type DeliveryDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status       string     `gorm:"not null;index"`
	RiderID      *string    `gorm:"index"`
	RiderName    *string
	PhoneNumber  *string
	VehicleType  *string
	PickupTime   *time.Time
	DeliveryTime *time.Time
	CreatedAt    time.Time  `gorm:"not null;index"`
	UpdatedAt    time.Time  `gorm:"not null"`

	Items []DeliveryItemDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery entities.
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// DeliveryItemDTO represents one order's membership in a delivery run.
// order_id is the primary key, so inserting the same order into a second
// delivery fails at the database level.
type DeliveryItemDTO struct {
	OrderID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;index;not null"`
	ItemStatus string    `gorm:"not null"`
	Position   int       `gorm:"not null"`
}

// TableName specifies the database table name for delivery item entities.
func (DeliveryItemDTO) TableName() string {
	return "delivery_items"
}

// fromDomain converts a delivery domain aggregate to its database
// representation.
func fromDomain(d *delivery.Delivery) DeliveryDTO {
	dto := DeliveryDTO{
		ID:           d.ID().Bytes(),
		Status:       d.Status().String(),
		PickupTime:   d.PickupTime(),
		DeliveryTime: d.DeliveryTime(),
		CreatedAt:    d.CreatedAt(),
		UpdatedAt:    d.UpdatedAt(),
	}

	if rider := d.RiderInfo(); rider != nil {
		riderID, riderName := rider.RiderID(), rider.RiderName()
		phoneNumber, vehicleType := rider.PhoneNumber(), rider.VehicleType()
		dto.RiderID = &riderID
		dto.RiderName = &riderName
		dto.PhoneNumber = &phoneNumber
		dto.VehicleType = &vehicleType
	}

	for position, item := range d.Items() {
		dto.Items = append(dto.Items, DeliveryItemDTO{
			OrderID:    item.OrderID().Bytes(),
			DeliveryID: d.ID().Bytes(),
			ItemStatus: item.Status().String(),
			Position:   position,
		})
	}

	return dto
}

// toDomain converts a database DTO back into a delivery domain aggregate.
// The wrapped orders are supplied by the caller, keyed by order id.
func toDomain(dto DeliveryDTO, orders map[uuid.UUID]*order.Order) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	status, err := delivery.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*delivery.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		itemStatus, statusErr := delivery.ItemStatusFromString(itemDTO.ItemStatus)
		if statusErr != nil {
			return nil, statusErr
		}

		item, itemErr := delivery.RestoreItem(orders[itemDTO.OrderID], itemStatus)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var riderInfo *delivery.RiderInfo
	if dto.RiderID != nil {
		rider, riderErr := delivery.NewRiderInfo(
			*dto.RiderID,
			valueOrEmpty(dto.RiderName),
			valueOrEmpty(dto.PhoneNumber),
			valueOrEmpty(dto.VehicleType),
		)
		if riderErr != nil {
			return nil, riderErr
		}
		riderInfo = &rider
	}

	return delivery.RestoreDelivery(id, items, riderInfo, status,
		dto.PickupTime, dto.DeliveryTime, dto.CreatedAt, dto.UpdatedAt)
}

func valueOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
