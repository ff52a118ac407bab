package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Pricing is the computed fee breakdown of a parcel. It is derived by the
// fee calculator and never supplied by users directly. The discount and
// coupon code survive recalculation when details change.
type Pricing struct {
	baseFee       float64
	weightCharge  float64
	urgencyCharge float64
	discount      float64
	totalFee      float64
	couponCode    string
}

// NewPricing creates a validated fee breakdown. All charges must be
// non-negative and the total must not be negative after discount.
func NewPricing(baseFee, weightCharge, urgencyCharge, discount, totalFee float64, couponCode string) (Pricing, error) {
	charges := map[string]float64{
		"pricing.baseFee":       baseFee,
		"pricing.weightCharge":  weightCharge,
		"pricing.urgencyCharge": urgencyCharge,
		"pricing.discount":      discount,
		"pricing.totalFee":      totalFee,
	}
	for name, value := range charges {
		if value < 0 {
			return Pricing{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%g is negative", value))
		}
	}

	return Pricing{
		baseFee:       baseFee,
		weightCharge:  weightCharge,
		urgencyCharge: urgencyCharge,
		discount:      discount,
		totalFee:      totalFee,
		couponCode:    couponCode,
	}, nil
}

// BaseFee returns the type-dependent base fee.
func (p Pricing) BaseFee() float64 { return p.baseFee }

// WeightCharge returns the weight-tier surcharge.
func (p Pricing) WeightCharge() float64 { return p.weightCharge }

// UrgencyCharge returns the urgency surcharge.
func (p Pricing) UrgencyCharge() float64 { return p.urgencyCharge }

// Discount returns the applied discount amount.
func (p Pricing) Discount() float64 { return p.discount }

// TotalFee returns the final fee after discount.
func (p Pricing) TotalFee() float64 { return p.totalFee }

// CouponCode returns the optional coupon code tied to the discount.
func (p Pricing) CouponCode() string { return p.couponCode }
