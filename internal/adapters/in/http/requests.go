package http

import (
	"time"

	"parceltrack/internal/core/domain/model/parcel"
)

type addressBody struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type receiverBody struct {
	Name    string      `json:"name"`
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Address addressBody `json:"address"`
}

type dimensionsBody struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type detailsBody struct {
	Type          string          `json:"type"`
	WeightKg      float64         `json:"weightKg"`
	Dimensions    *dimensionsBody `json:"dimensions,omitempty"`
	Description   string          `json:"description"`
	DeclaredValue *float64        `json:"declaredValue,omitempty"`
}

type deliveryInfoBody struct {
	PreferredDate *time.Time `json:"preferredDeliveryDate,omitempty"`
	Instructions  string     `json:"instructions,omitempty"`
	Urgency       string     `json:"urgency"`
}

type createParcelRequest struct {
	Receiver     receiverBody     `json:"receiver"`
	Details      detailsBody      `json:"parcelDetails"`
	DeliveryInfo deliveryInfoBody `json:"deliveryInfo"`
	Discount     float64          `json:"discount,omitempty"`
	CouponCode   string           `json:"couponCode,omitempty"`
}

func (r createParcelRequest) toReceiver() (parcel.Receiver, error) {
	address, err := parcel.NewAddress(
		r.Receiver.Address.Street,
		r.Receiver.Address.City,
		r.Receiver.Address.State,
		r.Receiver.Address.ZipCode,
		r.Receiver.Address.Country,
	)
	if err != nil {
		return parcel.Receiver{}, err
	}
	return parcel.NewReceiver(r.Receiver.Name, r.Receiver.Email, r.Receiver.Phone, address)
}

func (r createParcelRequest) toDetails() (parcel.Details, error) {
	var dimensions *parcel.Dimensions
	if r.Details.Dimensions != nil {
		d, err := parcel.NewDimensions(
			r.Details.Dimensions.Length,
			r.Details.Dimensions.Width,
			r.Details.Dimensions.Height,
		)
		if err != nil {
			return parcel.Details{}, err
		}
		dimensions = &d
	}
	return parcel.NewDetails(
		parcel.ParcelType(r.Details.Type),
		r.Details.WeightKg,
		dimensions,
		r.Details.Description,
		r.Details.DeclaredValue,
	)
}

func (r createParcelRequest) toDeliveryInfo() (parcel.DeliveryInfo, error) {
	return parcel.NewDeliveryInfo(
		r.DeliveryInfo.PreferredDate,
		r.DeliveryInfo.Instructions,
		parcel.Urgency(r.DeliveryInfo.Urgency),
	)
}

type addressPatchBody struct {
	Street  *string `json:"street,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	ZipCode *string `json:"zipCode,omitempty"`
	Country *string `json:"country,omitempty"`
}

type receiverPatchBody struct {
	Name    *string           `json:"name,omitempty"`
	Email   *string           `json:"email,omitempty"`
	Phone   *string           `json:"phone,omitempty"`
	Address *addressPatchBody `json:"address,omitempty"`
}

type dimensionsPatchBody struct {
	Length *float64 `json:"length,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

type detailsPatchBody struct {
	Type          *string              `json:"type,omitempty"`
	WeightKg      *float64             `json:"weightKg,omitempty"`
	Dimensions    *dimensionsPatchBody `json:"dimensions,omitempty"`
	Description   *string              `json:"description,omitempty"`
	DeclaredValue *float64             `json:"declaredValue,omitempty"`
}

type deliveryInfoPatchBody struct {
	PreferredDate *time.Time `json:"preferredDeliveryDate,omitempty"`
	Instructions  *string    `json:"instructions,omitempty"`
	Urgency       *string    `json:"urgency,omitempty"`
}

type updateParcelRequest struct {
	Receiver     *receiverPatchBody     `json:"receiver,omitempty"`
	Details      *detailsPatchBody      `json:"parcelDetails,omitempty"`
	DeliveryInfo *deliveryInfoPatchBody `json:"deliveryInfo,omitempty"`
}

func (r updateParcelRequest) toReceiverPatch() *parcel.ReceiverPatch {
	if r.Receiver == nil {
		return nil
	}
	patch := &parcel.ReceiverPatch{
		Name:  r.Receiver.Name,
		Email: r.Receiver.Email,
		Phone: r.Receiver.Phone,
	}
	if r.Receiver.Address != nil {
		patch.Address = &parcel.AddressPatch{
			Street:  r.Receiver.Address.Street,
			City:    r.Receiver.Address.City,
			State:   r.Receiver.Address.State,
			ZipCode: r.Receiver.Address.ZipCode,
			Country: r.Receiver.Address.Country,
		}
	}
	return patch
}

func (r updateParcelRequest) toDetailsPatch() *parcel.DetailsPatch {
	if r.Details == nil {
		return nil
	}
	patch := &parcel.DetailsPatch{
		WeightKg:      r.Details.WeightKg,
		Description:   r.Details.Description,
		DeclaredValue: r.Details.DeclaredValue,
	}
	if r.Details.Type != nil {
		parcelType := parcel.ParcelType(*r.Details.Type)
		patch.Type = &parcelType
	}
	if r.Details.Dimensions != nil {
		patch.Dimensions = &parcel.DimensionsPatch{
			Length: r.Details.Dimensions.Length,
			Width:  r.Details.Dimensions.Width,
			Height: r.Details.Dimensions.Height,
		}
	}
	return patch
}

func (r updateParcelRequest) toDeliveryInfoPatch() *parcel.DeliveryInfoPatch {
	if r.DeliveryInfo == nil {
		return nil
	}
	patch := &parcel.DeliveryInfoPatch{
		PreferredDate: r.DeliveryInfo.PreferredDate,
		Instructions:  r.DeliveryInfo.Instructions,
	}
	if r.DeliveryInfo.Urgency != nil {
		urgency := parcel.Urgency(*r.DeliveryInfo.Urgency)
		patch.Urgency = &urgency
	}
	return patch
}

type transitionStatusRequest struct {
	Status   string `json:"status"`
	Location string `json:"location,omitempty"`
	Note     string `json:"note,omitempty"`
}

type cancelParcelRequest struct {
	Reason string `json:"reason,omitempty"`
}

type confirmDeliveryRequest struct {
	Note string `json:"note,omitempty"`
}

type blockParcelRequest struct {
	IsBlocked bool   `json:"isBlocked"`
	Reason    string `json:"reason,omitempty"`
}

type assignPersonnelRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	EmployeeID  string `json:"employeeId"`
	VehicleInfo string `json:"vehicleInfo,omitempty"`
	Note        string `json:"note,omitempty"`
}
