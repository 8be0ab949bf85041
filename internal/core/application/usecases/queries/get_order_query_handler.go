package queries

import (
	"context"
	"database/sql"
	"errors"

	"coffeeshop/internal/core/domain/model/kernel"
	"coffeeshop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads a single order straight from the database,
// bypassing the aggregate layer. Read-only reporting path.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single-order queries.
// Requires a GORM database connection.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns the order with its lines, or ObjectNotFound when no order
// has the given identifier.
func (h GetOrderQueryHandler) Handle(
	ctx context.Context,
	query GetOrderQuery,
) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var resp GetOrderQueryResponse
	var id uuid.UUID
	var street, city, postalCode, country *string

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			customer_name,
			order_type,
			status,
			address_street,
			address_city,
			address_postal_code,
			address_country,
			total_price,
			created_at,
			updated_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.CustomerName,
		&resp.OrderType,
		&resp.Status,
		&street,
		&city,
		&postalCode,
		&country,
		&resp.TotalPrice,
		&resp.CreatedAt,
		&resp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	resp.ID = orderID

	if street != nil {
		resp.Address = &GetOrderQueryAddressResponse{
			Street:     *street,
			City:       *city,
			PostalCode: *postalCode,
			Country:    *country,
		}
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			product_name,
			quantity,
			unit_price
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item GetOrderQueryItemResponse

		err = rows.Scan(&item.ProductName, &item.Quantity, &item.UnitPrice)
		if err != nil {
			return nil, err
		}

		resp.Items = append(resp.Items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &resp, nil
}
