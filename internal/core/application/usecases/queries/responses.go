package queries

import (
	"time"

	"github.com/google/uuid"
)

// parcelRow mirrors the columns of the "parcels" table for read-side
// scanning. Field names follow GORM's snake_case mapping.
type parcelRow struct {
	ID         uuid.UUID
	TrackingID string
	SenderID   uuid.UUID

	ReceiverName    string
	ReceiverEmail   string
	ReceiverPhone   string
	ReceiverStreet  string
	ReceiverCity    string
	ReceiverState   string
	ReceiverZipCode string
	ReceiverCountry string

	ParcelType    string
	WeightKg      float64
	DimLength     *float64
	DimWidth      *float64
	DimHeight     *float64
	Description   string
	DeclaredValue *float64

	PreferredDate *time.Time
	Instructions  string
	Urgency       string

	BaseFee       float64
	WeightCharge  float64
	UrgencyCharge float64
	Discount      float64
	TotalFee      float64
	CouponCode    string

	CurrentStatus string
	IsBlocked     bool
	IsCancelled   bool

	PersonnelName        *string
	PersonnelEmail       *string
	PersonnelPhone       *string
	PersonnelEmployeeID  *string
	PersonnelVehicleInfo *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// statusLogRow mirrors the columns of "parcel_status_logs".
type statusLogRow struct {
	Status    string
	Kind      string
	Timestamp time.Time
	UpdatedBy uuid.UUID
	Location  string
	Note      string
}

// ReceiverResponse is the receiver snapshot in read responses.
type ReceiverResponse struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address AddressResponse `json:"address"`
}

// AddressResponse is the delivery address in read responses.
type AddressResponse struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// DetailsResponse is the physical-attribute section of read responses.
type DetailsResponse struct {
	Type          string              `json:"type"`
	WeightKg      float64             `json:"weightKg"`
	Dimensions    *DimensionsResponse `json:"dimensions,omitempty"`
	Description   string              `json:"description"`
	DeclaredValue *float64            `json:"declaredValue,omitempty"`
}

// DimensionsResponse is the optional dimensions block.
type DimensionsResponse struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DeliveryInfoResponse is the delivery-preferences section.
type DeliveryInfoResponse struct {
	PreferredDate *time.Time `json:"preferredDeliveryDate,omitempty"`
	Instructions  string     `json:"instructions,omitempty"`
	Urgency       string     `json:"urgency"`
}

// PricingResponse is the fee breakdown.
type PricingResponse struct {
	BaseFee       float64 `json:"baseFee"`
	WeightCharge  float64 `json:"weightCharge"`
	UrgencyCharge float64 `json:"urgencyCharge"`
	Discount      float64 `json:"discount"`
	TotalFee      float64 `json:"totalFee"`
	CouponCode    string  `json:"couponCode,omitempty"`
}

// PersonnelResponse is the assigned courier, when present.
type PersonnelResponse struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	EmployeeID  string `json:"employeeId"`
	VehicleInfo string `json:"vehicleInfo,omitempty"`
}

// HistoryEntryResponse is one entry of the status ledger.
type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
	Location  string    `json:"location,omitempty"`
	Note      string    `json:"note,omitempty"`
}

// ParcelResponse is the full read model of a parcel.
type ParcelResponse struct {
	ID            string                 `json:"id"`
	TrackingID    string                 `json:"trackingId"`
	SenderID      string                 `json:"senderId"`
	Receiver      ReceiverResponse       `json:"receiver"`
	Details       DetailsResponse        `json:"parcelDetails"`
	DeliveryInfo  DeliveryInfoResponse   `json:"deliveryInfo"`
	Pricing       PricingResponse        `json:"pricing"`
	CurrentStatus string                 `json:"currentStatus"`
	IsBlocked     bool                   `json:"isBlocked"`
	IsCancelled   bool                   `json:"isCancelled"`
	Personnel     *PersonnelResponse     `json:"deliveryPersonnel,omitempty"`
	History       []HistoryEntryResponse `json:"statusHistory"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// toParcelResponse assembles the full read model from table rows.
func toParcelResponse(row parcelRow, logs []statusLogRow) ParcelResponse {
	response := ParcelResponse{
		ID:         row.ID.String(),
		TrackingID: row.TrackingID,
		SenderID:   row.SenderID.String(),
		Receiver: ReceiverResponse{
			Name:  row.ReceiverName,
			Email: row.ReceiverEmail,
			Phone: row.ReceiverPhone,
			Address: AddressResponse{
				Street:  row.ReceiverStreet,
				City:    row.ReceiverCity,
				State:   row.ReceiverState,
				ZipCode: row.ReceiverZipCode,
				Country: row.ReceiverCountry,
			},
		},
		Details: DetailsResponse{
			Type:          row.ParcelType,
			WeightKg:      row.WeightKg,
			Description:   row.Description,
			DeclaredValue: row.DeclaredValue,
		},
		DeliveryInfo: DeliveryInfoResponse{
			PreferredDate: row.PreferredDate,
			Instructions:  row.Instructions,
			Urgency:       row.Urgency,
		},
		Pricing: PricingResponse{
			BaseFee:       row.BaseFee,
			WeightCharge:  row.WeightCharge,
			UrgencyCharge: row.UrgencyCharge,
			Discount:      row.Discount,
			TotalFee:      row.TotalFee,
			CouponCode:    row.CouponCode,
		},
		CurrentStatus: row.CurrentStatus,
		IsBlocked:     row.IsBlocked,
		IsCancelled:   row.IsCancelled,
		History:       make([]HistoryEntryResponse, 0, len(logs)),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}

	if row.DimLength != nil && row.DimWidth != nil && row.DimHeight != nil {
		response.Details.Dimensions = &DimensionsResponse{
			Length: *row.DimLength,
			Width:  *row.DimWidth,
			Height: *row.DimHeight,
		}
	}

	if row.PersonnelEmployeeID != nil {
		response.Personnel = &PersonnelResponse{
			Name:        strDeref(row.PersonnelName),
			Email:       strDeref(row.PersonnelEmail),
			Phone:       strDeref(row.PersonnelPhone),
			EmployeeID:  *row.PersonnelEmployeeID,
			VehicleInfo: strDeref(row.PersonnelVehicleInfo),
		}
	}

	for _, log := range logs {
		response.History = append(response.History, HistoryEntryResponse{
			Status:    log.Status,
			Kind:      log.Kind,
			Timestamp: log.Timestamp,
			UpdatedBy: log.UpdatedBy.String(),
			Location:  log.Location,
			Note:      log.Note,
		})
	}

	return response
}

func strDeref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
