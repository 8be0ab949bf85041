// Package orderrepo provides data transfer objects and mapping functions
// for order persistence. It implements the order repository port over
// PostgreSQL, converting between domain aggregates and database rows.
package orderrepo

import (
	"time"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order
// aggregates. Statuses and types are stored as their wire names so
// reporting queries stay readable.
type OrderDTO struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CustomerName string           `gorm:"not null"`
	OrderType    string           `gorm:"not null;index"`
	Status       string           `gorm:"not null;index"`
	Address      AddressDTO       `gorm:"embedded;embeddedPrefix:address_"`
	TotalPrice   *decimal.Decimal `gorm:"type:numeric(12,2)"`
	CreatedAt    time.Time        `gorm:"not null;index"`
	UpdatedAt    time.Time        `gorm:"not null"`

	Items []OrderItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents the embedded, nullable delivery address columns.
// All four are nil for dine-in orders.
type AddressDTO struct {
	Street     *string
	City       *string
	PostalCode *string
	Country    *string
}

// OrderItemDTO represents one order line row. The autoincrement key
// preserves line order across save/load cycles.
type OrderItemDTO struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	OrderID     uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductName string          `gorm:"not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for order line entities.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database
// representation.
func fromDomain(ord *order.Order) OrderDTO {
	dto := OrderDTO{
		ID:           ord.ID().Bytes(),
		CustomerName: ord.CustomerName(),
		OrderType:    ord.Type().String(),
		Status:       ord.Status().String(),
		CreatedAt:    ord.CreatedAt(),
		UpdatedAt:    ord.UpdatedAt(),
	}

	if addr := ord.Address(); addr != nil {
		street, city, postalCode, country := addr.Street(), addr.City(), addr.PostalCode(), addr.Country()
		dto.Address = AddressDTO{
			Street:     &street,
			City:       &city,
			PostalCode: &postalCode,
			Country:    &country,
		}
	}

	if total := ord.TotalPrice(); total != nil {
		amount := total.Amount()
		dto.TotalPrice = &amount
	}

	for _, item := range ord.Items() {
		dto.Items = append(dto.Items, OrderItemDTO{
			OrderID:     ord.ID().Bytes(),
			ProductName: item.ProductName(),
			Quantity:    item.Quantity(),
			UnitPrice:   item.UnitPrice().Amount(),
		})
	}

	return dto
}

// toDomain converts a database DTO back into an order domain aggregate
// using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderType, err := order.TypeFromString(dto.OrderType)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}

		item, itemErr := order.NewItem(itemDTO.ProductName, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var address *order.Address
	if dto.Address.Street != nil {
		addr, addrErr := order.NewAddress(
			*dto.Address.Street,
			*dto.Address.City,
			*dto.Address.PostalCode,
			*dto.Address.Country,
		)
		if addrErr != nil {
			return nil, addrErr
		}
		address = &addr
	}

	var totalPrice *kernel.Money
	if dto.TotalPrice != nil {
		total, totalErr := kernel.NewMoney(*dto.TotalPrice)
		if totalErr != nil {
			return nil, totalErr
		}
		totalPrice = &total
	}

	return order.RestoreOrder(id, dto.CustomerName, orderType, items, address,
		status, totalPrice, dto.CreatedAt, dto.UpdatedAt)
}
