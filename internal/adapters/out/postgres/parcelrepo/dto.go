// Package parcelrepo provides data transfer objects and mapping functions
// for parcel persistence. It implements the repository pattern for the
// parcel aggregate: the aggregate row lives in "parcels" and the
// append-only history in the "parcel_status_logs" child table.
package parcelrepo

import (
	"time"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO represents the database structure for persisting parcel
// aggregates. The receiver, details, delivery-info and pricing value
// objects are flattened into prefixed column groups; history entries are
// stored separately in StatusLogDTO rows.
type ParcelDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TrackingID string    `gorm:"size:20;uniqueIndex"`
	SenderID   uuid.UUID `gorm:"type:uuid;index"`

	Receiver     ReceiverDTO     `gorm:"embedded;embeddedPrefix:receiver_"`
	Details      DetailsDTO      `gorm:"embedded"`
	DeliveryInfo DeliveryInfoDTO `gorm:"embedded"`
	Pricing      PricingDTO      `gorm:"embedded"`

	CurrentStatus string `gorm:"size:32;index"`
	IsBlocked     bool
	IsCancelled   bool

	Personnel PersonnelDTO `gorm:"embedded;embeddedPrefix:personnel_"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default naming to use "parcels".
func (ParcelDTO) TableName() string {
	return "parcels"
}

// ReceiverDTO flattens the receiver snapshot, address included.
type ReceiverDTO struct {
	Name    string `gorm:"size:50"`
	Email   string `gorm:"size:255;index"`
	Phone   string `gorm:"size:32"`
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// DetailsDTO flattens the physical attributes.
type DetailsDTO struct {
	ParcelType    string `gorm:"size:16"`
	WeightKg      float64
	DimLength     *float64
	DimWidth      *float64
	DimHeight     *float64
	Description   string `gorm:"size:500"`
	DeclaredValue *float64
}

// DeliveryInfoDTO flattens the delivery preferences.
type DeliveryInfoDTO struct {
	PreferredDate *time.Time
	Instructions  string `gorm:"size:1000"`
	Urgency       string `gorm:"size:16"`
}

// PricingDTO flattens the fee breakdown.
type PricingDTO struct {
	BaseFee       float64
	WeightCharge  float64
	UrgencyCharge float64
	Discount      float64
	TotalFee      float64
	CouponCode    string `gorm:"size:32"`
}

// PersonnelDTO flattens the optional courier assignment. A nil EmployeeID
// means no courier is assigned.
type PersonnelDTO struct {
	Name        *string
	Email       *string
	Phone       *string
	EmployeeID  *string
	VehicleInfo *string
}

// StatusLogDTO represents one row of the append-only history ledger.
// Rows are only ever inserted; the surrogate key preserves append order
// for entries sharing a timestamp.
type StatusLogDTO struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	ParcelID  uuid.UUID `gorm:"type:uuid;index"`
	Status    string    `gorm:"size:32"`
	Kind      string    `gorm:"size:16"`
	Timestamp time.Time
	UpdatedBy uuid.UUID `gorm:"type:uuid"`
	Location  string
	Note      string `gorm:"size:500"`
}

// TableName overrides GORM's default naming to use "parcel_status_logs".
func (StatusLogDTO) TableName() string {
	return "parcel_status_logs"
}

// fromDomain converts a parcel aggregate to its database representation.
func fromDomain(aggregate *parcel.Parcel) ParcelDTO {
	receiver := aggregate.Receiver()
	address := receiver.Address()
	details := aggregate.Details()
	info := aggregate.DeliveryInfo()
	pricing := aggregate.Pricing()

	dto := ParcelDTO{
		ID:         aggregate.ID().Bytes(),
		TrackingID: aggregate.TrackingID().String(),
		SenderID:   aggregate.SenderID().Bytes(),
		Receiver: ReceiverDTO{
			Name:    receiver.Name(),
			Email:   receiver.Email(),
			Phone:   receiver.Phone(),
			Street:  address.Street(),
			City:    address.City(),
			State:   address.State(),
			ZipCode: address.ZipCode(),
			Country: address.Country(),
		},
		Details: DetailsDTO{
			ParcelType:    string(details.Type()),
			WeightKg:      details.WeightKg(),
			Description:   details.Description(),
			DeclaredValue: details.DeclaredValue(),
		},
		DeliveryInfo: DeliveryInfoDTO{
			PreferredDate: info.PreferredDate(),
			Instructions:  info.Instructions(),
			Urgency:       string(info.Urgency()),
		},
		Pricing: PricingDTO{
			BaseFee:       pricing.BaseFee(),
			WeightCharge:  pricing.WeightCharge(),
			UrgencyCharge: pricing.UrgencyCharge(),
			Discount:      pricing.Discount(),
			TotalFee:      pricing.TotalFee(),
			CouponCode:    pricing.CouponCode(),
		},
		CurrentStatus: aggregate.Status().String(),
		IsBlocked:     aggregate.IsBlocked(),
		IsCancelled:   aggregate.IsCancelled(),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}

	if dims := details.Dimensions(); dims != nil {
		length, width, height := dims.Length(), dims.Width(), dims.Height()
		dto.Details.DimLength = &length
		dto.Details.DimWidth = &width
		dto.Details.DimHeight = &height
	}

	if courier := aggregate.Personnel(); courier != nil {
		name, email, phone := courier.Name(), courier.Email(), courier.Phone()
		employeeID, vehicleInfo := courier.EmployeeID(), courier.VehicleInfo()
		dto.Personnel = PersonnelDTO{
			Name:        &name,
			Email:       &email,
			Phone:       &phone,
			EmployeeID:  &employeeID,
			VehicleInfo: &vehicleInfo,
		}
	}

	return dto
}

// logFromDomain converts one history entry to its database row.
func logFromDomain(parcelID kernel.UUID, entry parcel.StatusLogEntry) StatusLogDTO {
	return StatusLogDTO{
		ParcelID:  parcelID.Bytes(),
		Status:    entry.Status().String(),
		Kind:      string(entry.Kind()),
		Timestamp: entry.Timestamp(),
		UpdatedBy: entry.UpdatedBy().Bytes(),
		Location:  entry.Location(),
		Note:      entry.Note(),
	}
}

// toDomain converts database rows back into a parcel aggregate using the
// restore path, so the loaded status and history length are remembered for
// the next conditional update.
func toDomain(dto ParcelDTO, logs []StatusLogDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	senderID, err := kernel.UUIDFromBytes(dto.SenderID[:])
	if err != nil {
		return nil, err
	}

	trackingID, err := parcel.TrackingIDFromString(dto.TrackingID)
	if err != nil {
		return nil, err
	}

	address, err := parcel.NewAddress(dto.Receiver.Street, dto.Receiver.City,
		dto.Receiver.State, dto.Receiver.ZipCode, dto.Receiver.Country)
	if err != nil {
		return nil, err
	}

	receiver, err := parcel.NewReceiver(dto.Receiver.Name, dto.Receiver.Email, dto.Receiver.Phone, address)
	if err != nil {
		return nil, err
	}

	var dims *parcel.Dimensions
	if dto.Details.DimLength != nil && dto.Details.DimWidth != nil && dto.Details.DimHeight != nil {
		d, dimErr := parcel.NewDimensions(*dto.Details.DimLength, *dto.Details.DimWidth, *dto.Details.DimHeight)
		if dimErr != nil {
			return nil, dimErr
		}
		dims = &d
	}

	details, err := parcel.NewDetails(parcel.ParcelType(dto.Details.ParcelType),
		dto.Details.WeightKg, dims, dto.Details.Description, dto.Details.DeclaredValue)
	if err != nil {
		return nil, err
	}

	info, err := parcel.NewDeliveryInfo(dto.DeliveryInfo.PreferredDate,
		dto.DeliveryInfo.Instructions, parcel.Urgency(dto.DeliveryInfo.Urgency))
	if err != nil {
		return nil, err
	}

	pricing, err := parcel.NewPricing(dto.Pricing.BaseFee, dto.Pricing.WeightCharge,
		dto.Pricing.UrgencyCharge, dto.Pricing.Discount, dto.Pricing.TotalFee, dto.Pricing.CouponCode)
	if err != nil {
		return nil, err
	}

	var courier *parcel.DeliveryPersonnel
	if dto.Personnel.EmployeeID != nil {
		vehicleInfo := ""
		if dto.Personnel.VehicleInfo != nil {
			vehicleInfo = *dto.Personnel.VehicleInfo
		}
		c, courierErr := parcel.NewDeliveryPersonnel(deref(dto.Personnel.Name),
			deref(dto.Personnel.Email), deref(dto.Personnel.Phone), *dto.Personnel.EmployeeID, vehicleInfo)
		if courierErr != nil {
			return nil, courierErr
		}
		courier = &c
	}

	history := make([]parcel.StatusLogEntry, 0, len(logs))
	for _, log := range logs {
		updatedBy, logErr := kernel.UUIDFromBytes(log.UpdatedBy[:])
		if logErr != nil {
			return nil, logErr
		}
		entry, logErr := parcel.NewStatusLogEntry(parcel.Status(log.Status),
			parcel.EntryKind(log.Kind), log.Timestamp, updatedBy, log.Location, log.Note)
		if logErr != nil {
			return nil, logErr
		}
		history = append(history, entry)
	}

	return parcel.RestoreParcel(id, trackingID, senderID, receiver, details, info, pricing,
		parcel.Status(dto.CurrentStatus), history, dto.IsBlocked, dto.IsCancelled, courier,
		dto.CreatedAt, dto.UpdatedAt), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
