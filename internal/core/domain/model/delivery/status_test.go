package delivery_test

import (
	"fmt"
	"testing"

	"coffeeshop/internal/core/domain/model/delivery"
	"coffeeshop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	t.Run("should render wire names", func(t *testing.T) {
		expected := map[delivery.Status]string{
			delivery.StatusUnknown:   "UNKNOWN",
			delivery.StatusCreated:   "CREATED",
			delivery.StatusAssigned:  "ASSIGNED",
			delivery.StatusPickedUp:  "PICKED_UP",
			delivery.StatusInTransit: "IN_TRANSIT",
			delivery.StatusDelivered: "DELIVERED",
			delivery.StatusCompleted: "COMPLETED",
			delivery.StatusCancelled: "CANCELLED",
		}

		for status, name := range expected {
			assert.Equal(t, name, status.String())
		}
	})
}

func TestStatus_Validate(t *testing.T) {
	validStatuses := []delivery.Status{
		delivery.StatusCreated, delivery.StatusAssigned, delivery.StatusPickedUp,
		delivery.StatusInTransit, delivery.StatusDelivered,
		delivery.StatusCompleted, delivery.StatusCancelled,
	}
	for _, status := range validStatuses {
		t.Run(fmt.Sprintf("should accept %s", status), func(t *testing.T) {
			assert.NoError(t, status.Validate())
		})
	}

	t.Run("should reject the zero value", func(t *testing.T) {
		err := delivery.StatusUnknown.Validate()

		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsInvalidError{}, err)
	})
}

func TestStatusFromString(t *testing.T) {
	t.Run("should parse wire names", func(t *testing.T) {
		status, err := delivery.StatusFromString("IN_TRANSIT")

		require.NoError(t, err)
		assert.Equal(t, delivery.StatusInTransit, status)
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := delivery.StatusFromString("LOST")

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestStatus_Transitions(t *testing.T) {
	allStatuses := []delivery.Status{
		delivery.StatusCreated, delivery.StatusAssigned, delivery.StatusPickedUp,
		delivery.StatusInTransit, delivery.StatusDelivered,
		delivery.StatusCompleted, delivery.StatusCancelled,
	}

	transitions := []struct {
		name    string
		apply   func(delivery.Status) (delivery.Status, error)
		target  delivery.Status
		allowed []delivery.Status
	}{
		{
			name:    "assign",
			apply:   delivery.Status.Assign,
			target:  delivery.StatusAssigned,
			allowed: []delivery.Status{delivery.StatusCreated},
		},
		{
			name:    "pick up",
			apply:   delivery.Status.PickUp,
			target:  delivery.StatusPickedUp,
			allowed: []delivery.Status{delivery.StatusAssigned},
		},
		{
			name:    "start transit",
			apply:   delivery.Status.StartTransit,
			target:  delivery.StatusInTransit,
			allowed: []delivery.Status{delivery.StatusPickedUp},
		},
		{
			name:    "deliver",
			apply:   delivery.Status.Deliver,
			target:  delivery.StatusDelivered,
			allowed: []delivery.Status{delivery.StatusInTransit},
		},
		{
			name:    "complete",
			apply:   delivery.Status.Complete,
			target:  delivery.StatusCompleted,
			allowed: []delivery.Status{delivery.StatusDelivered},
		},
		{
			name:    "cancel",
			apply:   delivery.Status.Cancel,
			target:  delivery.StatusCancelled,
			allowed: []delivery.Status{delivery.StatusCreated, delivery.StatusAssigned},
		},
	}

	for _, tc := range transitions {
		t.Run(tc.name, func(t *testing.T) {
			allowed := make(map[delivery.Status]bool)
			for _, s := range tc.allowed {
				allowed[s] = true
			}

			for _, from := range allStatuses {
				next, err := tc.apply(from)

				if allowed[from] {
					require.NoError(t, err, "expected %s -> %s to succeed", from, tc.target)
					assert.Equal(t, tc.target, next)
				} else {
					require.Error(t, err, "expected %s -> %s to fail", from, tc.target)
					assert.ErrorIs(t, err, errs.ErrInvalidStateTransition)
				}
			}
		})
	}
}

func TestStatus_IsActive(t *testing.T) {
	t.Run("should report assigned through in-transit as active", func(t *testing.T) {
		assert.True(t, delivery.StatusAssigned.IsActive())
		assert.True(t, delivery.StatusPickedUp.IsActive())
		assert.True(t, delivery.StatusInTransit.IsActive())

		assert.False(t, delivery.StatusCreated.IsActive())
		assert.False(t, delivery.StatusDelivered.IsActive())
		assert.False(t, delivery.StatusCompleted.IsActive())
		assert.False(t, delivery.StatusCancelled.IsActive())
	})
}

func TestStatus_IsTerminal(t *testing.T) {
	t.Run("should report terminal statuses", func(t *testing.T) {
		assert.True(t, delivery.StatusCompleted.IsTerminal())
		assert.True(t, delivery.StatusCancelled.IsTerminal())

		assert.False(t, delivery.StatusDelivered.IsTerminal())
		assert.False(t, delivery.StatusCreated.IsTerminal())
	})
}
