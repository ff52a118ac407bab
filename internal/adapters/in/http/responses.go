package http

import (
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/domain/model/parcel"
)

// toParcelResponse projects a domain aggregate into the shared read
// model, so command endpoints return the same shape as query endpoints.
func toParcelResponse(aggregate *parcel.Parcel) queries.ParcelResponse {
	receiver := aggregate.Receiver()
	details := aggregate.Details()
	deliveryInfo := aggregate.DeliveryInfo()
	pricing := aggregate.Pricing()

	response := queries.ParcelResponse{
		ID:         aggregate.ID().String(),
		TrackingID: aggregate.TrackingID().String(),
		SenderID:   aggregate.SenderID().String(),
		Receiver: queries.ReceiverResponse{
			Name:  receiver.Name(),
			Email: receiver.Email(),
			Phone: receiver.Phone(),
			Address: queries.AddressResponse{
				Street:  receiver.Address().Street(),
				City:    receiver.Address().City(),
				State:   receiver.Address().State(),
				ZipCode: receiver.Address().ZipCode(),
				Country: receiver.Address().Country(),
			},
		},
		Details: queries.DetailsResponse{
			Type:          string(details.Type()),
			WeightKg:      details.WeightKg(),
			Description:   details.Description(),
			DeclaredValue: details.DeclaredValue(),
		},
		DeliveryInfo: queries.DeliveryInfoResponse{
			PreferredDate: deliveryInfo.PreferredDate(),
			Instructions:  deliveryInfo.Instructions(),
			Urgency:       string(deliveryInfo.Urgency()),
		},
		Pricing: queries.PricingResponse{
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
		History:       make([]queries.HistoryEntryResponse, 0, len(aggregate.History())),
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}

	if dimensions := details.Dimensions(); dimensions != nil {
		response.Details.Dimensions = &queries.DimensionsResponse{
			Length: dimensions.Length(),
			Width:  dimensions.Width(),
			Height: dimensions.Height(),
		}
	}

	if personnel := aggregate.Personnel(); personnel != nil {
		response.Personnel = &queries.PersonnelResponse{
			Name:        personnel.Name(),
			Email:       personnel.Email(),
			Phone:       personnel.Phone(),
			EmployeeID:  personnel.EmployeeID(),
			VehicleInfo: personnel.VehicleInfo(),
		}
	}

	for _, entry := range aggregate.History() {
		response.History = append(response.History, queries.HistoryEntryResponse{
			Status:    entry.Status().String(),
			Kind:      string(entry.Kind()),
			Timestamp: entry.Timestamp(),
			UpdatedBy: entry.UpdatedBy().String(),
			Location:  entry.Location(),
			Note:      entry.Note(),
		})
	}

	return response
}
