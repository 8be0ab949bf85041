package queries

import (
	"context"

	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler reads delivery runs currently underway
// straight from the database, bypassing the aggregate layer.
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active delivery
// queries. Requires a GORM database connection.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle returns every assigned, picked-up, or in-transit delivery run
// together with its order count, oldest first.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			d.id,
			d.status,
			d.rider_name,
			COUNT(di.order_id) AS order_count,
			d.pickup_time,
			d.created_at
		FROM deliveries d
		LEFT JOIN delivery_items di ON di.delivery_id = d.id
		WHERE d.status IN (?, ?, ?)
		GROUP BY d.id, d.status, d.rider_name, d.pickup_time, d.created_at
		ORDER BY d.created_at
	`,
		delivery.StatusAssigned.String(),
		delivery.StatusPickedUp.String(),
		delivery.StatusInTransit.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveDeliveriesQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&resp.Status,
			&resp.RiderName,
			&resp.OrderCount,
			&resp.PickupTime,
			&resp.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		deliveryID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = deliveryID

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
