package parcel

import (
	"fmt"
	"net/mail"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// DeliveryPersonnel is the courier snapshot assigned to a parcel by an
// administrator. The assignment is write-once: once set it never changes.
type DeliveryPersonnel struct {
	name        string
	email       string
	phone       string
	employeeID  string
	vehicleInfo string
}

// NewDeliveryPersonnel creates a validated courier snapshot. Name, email,
// phone and employee ID are required; vehicle info is optional.
func NewDeliveryPersonnel(name, email, phone, employeeID, vehicleInfo string) (DeliveryPersonnel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DeliveryPersonnel{}, errs.NewValueIsRequiredError("personnel.name")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return DeliveryPersonnel{}, errs.NewValueIsInvalidErrorWithCause("personnel.email",
			fmt.Errorf("%q is not a valid email address", email))
	}

	if strings.TrimSpace(phone) == "" {
		return DeliveryPersonnel{}, errs.NewValueIsRequiredError("personnel.phone")
	}

	if strings.TrimSpace(employeeID) == "" {
		return DeliveryPersonnel{}, errs.NewValueIsRequiredError("personnel.employeeId")
	}

	return DeliveryPersonnel{
		name:        name,
		email:       email,
		phone:       phone,
		employeeID:  employeeID,
		vehicleInfo: vehicleInfo,
	}, nil
}

// Name returns the courier's display name.
func (p DeliveryPersonnel) Name() string { return p.name }

// Email returns the courier's lowercased email address.
func (p DeliveryPersonnel) Email() string { return p.email }

// Phone returns the courier's phone number.
func (p DeliveryPersonnel) Phone() string { return p.phone }

// EmployeeID returns the courier's internal employee identifier.
func (p DeliveryPersonnel) EmployeeID() string { return p.employeeID }

// VehicleInfo returns the optional vehicle description.
func (p DeliveryPersonnel) VehicleInfo() string { return p.vehicleInfo }
