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

// GetDeliveryQueryHandler reads a single delivery run straight from the
// database, bypassing the aggregate layer. Read-only reporting path.
type GetDeliveryQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryQueryHandler creates a handler for single-delivery queries.
// Requires a GORM database connection.
func NewGetDeliveryQueryHandler(db *gorm.DB) GetDeliveryQueryHandler {
	return GetDeliveryQueryHandler{db: db}
}

// Handle returns the delivery run with its batched order identifiers, or
// ObjectNotFound when no delivery has the given identifier.
func (h GetDeliveryQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryQuery,
) (*GetDeliveryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var resp GetDeliveryQueryResponse
	var id uuid.UUID

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			rider_id,
			rider_name,
			pickup_time,
			delivery_time,
			created_at
		FROM deliveries
		WHERE id = ?
	`, query.DeliveryID().Bytes()).Row()

	err := row.Scan(
		&id,
		&resp.Status,
		&resp.RiderID,
		&resp.RiderName,
		&resp.PickupTime,
		&resp.DeliveryTime,
		&resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NewObjectNotFoundError("delivery", query.DeliveryID().String())
		}
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return nil, err
	}
	resp.ID = deliveryID

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT order_id
		FROM delivery_items
		WHERE delivery_id = ?
		ORDER BY position
	`, query.DeliveryID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rawID uuid.UUID

		if err = rows.Scan(&rawID); err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(rawID[:])
		if idErr != nil {
			return nil, idErr
		}

		resp.OrderIDs = append(resp.OrderIDs, orderID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &resp, nil
}
