package delivery

import (
	"errors"
	"strings"

	"coffeeshop/internal/pkg/errs"
	"coffeeshop/internal/pkg/guard"
)

// DefaultVehicleType is used when a rider is assigned without an explicit
// vehicle type.
const DefaultVehicleType = "BICYCLE"

// ErrRiderInfoIsNotConstructed is returned when validating a zero-value RiderInfo.
var ErrRiderInfoIsNotConstructed = errs.NewValueIsRequiredError(
	"rider info must be created via NewRiderInfo constructor")

// RiderInfo identifies the rider assigned to a delivery run. It is a value
// object assigned at most once per delivery; reassignment is rejected by
// the Delivery state machine.
type RiderInfo struct { //nolint:recvcheck //using for validation
	riderID     string
	riderName   string
	phoneNumber string
	vehicleType string

	guard guard.ConstructorGuard
}

// NewRiderInfo creates a validated RiderInfo. ID, name, and phone number
// are required; an empty vehicle type falls back to DefaultVehicleType.
func NewRiderInfo(riderID, riderName, phoneNumber, vehicleType string) (RiderInfo, error) {
	info := RiderInfo{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		info.setRiderID(riderID),
		info.setRiderName(riderName),
		info.setPhoneNumber(phoneNumber),
	); err != nil {
		return RiderInfo{}, err
	}

	vehicleType = strings.TrimSpace(vehicleType)
	if vehicleType == "" {
		vehicleType = DefaultVehicleType
	}
	info.vehicleType = vehicleType

	return info, nil
}

// Validate ensures the RiderInfo was created through NewRiderInfo.
func (r RiderInfo) Validate() error {
	return r.guard.Validate(ErrRiderInfoIsNotConstructed)
}

// RiderID returns the rider's identifier.
func (r RiderInfo) RiderID() string {
	return r.riderID
}

// RiderName returns the rider's name.
func (r RiderInfo) RiderName() string {
	return r.riderName
}

// PhoneNumber returns the rider's phone number.
func (r RiderInfo) PhoneNumber() string {
	return r.phoneNumber
}

// VehicleType returns the rider's vehicle type.
func (r RiderInfo) VehicleType() string {
	return r.vehicleType
}

// IsEqual compares two rider infos component by component.
func (r RiderInfo) IsEqual(other RiderInfo) bool {
	return r.riderID == other.riderID &&
		r.riderName == other.riderName &&
		r.phoneNumber == other.phoneNumber &&
		r.vehicleType == other.vehicleType
}

func (r *RiderInfo) setRiderID(riderID string) error {
	riderID = strings.TrimSpace(riderID)
	if riderID == "" {
		return errs.NewValueIsRequiredError("rider id")
	}

	r.riderID = riderID
	return nil
}

func (r *RiderInfo) setRiderName(riderName string) error {
	riderName = strings.TrimSpace(riderName)
	if riderName == "" {
		return errs.NewValueIsRequiredError("rider name")
	}

	r.riderName = riderName
	return nil
}

func (r *RiderInfo) setPhoneNumber(phoneNumber string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return errs.NewValueIsRequiredError("phone number")
	}

	r.phoneNumber = phoneNumber
	return nil
}
