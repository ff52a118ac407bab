package parcel

import (
	"fmt"
	"net/mail"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Receiver name length bounds.
const (
	MinReceiverNameLen = 2
	MaxReceiverNameLen = 50
)

// Address is the postal address portion of a receiver snapshot.
// All fields are required.
type Address struct {
	street  string
	city    string
	state   string
	zipCode string
	country string
}

// NewAddress creates a validated Address. Every component is required.
func NewAddress(street, city, state, zipCode, country string) (Address, error) {
	fields := map[string]string{
		"address.street":  street,
		"address.city":    city,
		"address.state":   state,
		"address.zipCode": zipCode,
		"address.country": country,
	}
	for name, value := range fields {
		if strings.TrimSpace(value) == "" {
			return Address{}, errs.NewValueIsRequiredError(name)
		}
	}

	return Address{
		street:  street,
		city:    city,
		state:   state,
		zipCode: zipCode,
		country: country,
	}, nil
}

// Street returns the street line.
func (a Address) Street() string { return a.street }

// City returns the city.
func (a Address) City() string { return a.city }

// State returns the state or region.
func (a Address) State() string { return a.state }

// ZipCode returns the postal code.
func (a Address) ZipCode() string { return a.zipCode }

// Country returns the country.
func (a Address) Country() string { return a.country }

// AddressPatch carries a partial address update. Only non-nil fields
// overwrite the corresponding address component.
type AddressPatch struct {
	Street  *string
	City    *string
	State   *string
	ZipCode *string
	Country *string
}

// Apply merges the patch over the address and revalidates the result.
func (a Address) Apply(patch AddressPatch) (Address, error) {
	merged := a
	if patch.Street != nil {
		merged.street = *patch.Street
	}
	if patch.City != nil {
		merged.city = *patch.City
	}
	if patch.State != nil {
		merged.state = *patch.State
	}
	if patch.ZipCode != nil {
		merged.zipCode = *patch.ZipCode
	}
	if patch.Country != nil {
		merged.country = *patch.Country
	}
	return NewAddress(merged.street, merged.city, merged.state, merged.zipCode, merged.country)
}

// Receiver is the contact-and-address snapshot embedded in a parcel.
// It is not a reference to a user account: the receiver does not need to be
// registered. The email is the key used for receiver-side access checks.
type Receiver struct {
	name    string
	email   string
	phone   string
	address Address
}

// NewReceiver creates a validated Receiver snapshot.
// The name must be 2-50 characters, the email must parse as an address
// (stored lowercased), and the phone is required.
func NewReceiver(name, email, phone string, address Address) (Receiver, error) {
	name = strings.TrimSpace(name)
	if len(name) < MinReceiverNameLen || len(name) > MaxReceiverNameLen {
		return Receiver{}, errs.NewValueIsOutOfRangeError("receiver.name length", len(name),
			MinReceiverNameLen, MaxReceiverNameLen)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := mail.ParseAddress(email); err != nil {
		return Receiver{}, errs.NewValueIsInvalidErrorWithCause("receiver.email",
			fmt.Errorf("%q is not a valid email address", email))
	}

	if strings.TrimSpace(phone) == "" {
		return Receiver{}, errs.NewValueIsRequiredError("receiver.phone")
	}

	return Receiver{
		name:    name,
		email:   email,
		phone:   phone,
		address: address,
	}, nil
}

// Name returns the receiver's display name.
func (r Receiver) Name() string { return r.name }

// Email returns the receiver's lowercased email address.
func (r Receiver) Email() string { return r.email }

// Phone returns the receiver's phone number.
func (r Receiver) Phone() string { return r.phone }

// Address returns the delivery address snapshot.
func (r Receiver) Address() Address { return r.address }

// ReceiverPatch carries a partial receiver update. Only non-nil leaf fields
// overwrite the current snapshot; others are retained.
type ReceiverPatch struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *AddressPatch
}

// Apply merges the patch over the receiver and revalidates the result.
func (r Receiver) Apply(patch ReceiverPatch) (Receiver, error) {
	merged := r
	if patch.Name != nil {
		merged.name = *patch.Name
	}
	if patch.Email != nil {
		merged.email = *patch.Email
	}
	if patch.Phone != nil {
		merged.phone = *patch.Phone
	}

	address := r.address
	if patch.Address != nil {
		var err error
		address, err = r.address.Apply(*patch.Address)
		if err != nil {
			return Receiver{}, err
		}
	}

	return NewReceiver(merged.name, merged.email, merged.phone, address)
}
