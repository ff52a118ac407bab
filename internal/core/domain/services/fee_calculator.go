package services

import (
	"errors"
	"fmt"
	"math"

	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/pkg/errs"
)

// Base fee by parcel type, in the platform currency.
const (
	BaseFeeDocument    = 30.0
	BaseFeePackage     = 50.0
	BaseFeeFragile     = 80.0
	BaseFeeElectronics = 100.0
	BaseFeeOther       = 60.0
)

// Weight surcharge tiers. A parcel pays the surcharge of the first tier
// whose upper bound its weight does not exceed.
const (
	WeightTier1MaxKg = 1.0
	WeightTier2MaxKg = 5.0
	WeightTier3MaxKg = 15.0
	WeightTier4MaxKg = 30.0

	WeightTier1Charge = 0.0
	WeightTier2Charge = 20.0
	WeightTier3Charge = 60.0
	WeightTier4Charge = 120.0
	WeightTier5Charge = 200.0
)

// Urgency multipliers applied over base fee plus weight surcharge.
const (
	MultiplierStandard = 1.0
	MultiplierExpress  = 1.5
	MultiplierUrgent   = 2.0
)

var baseFees = map[parcel.ParcelType]float64{
	parcel.TypeDocument:    BaseFeeDocument,
	parcel.TypePackage:     BaseFeePackage,
	parcel.TypeFragile:     BaseFeeFragile,
	parcel.TypeElectronics: BaseFeeElectronics,
	parcel.TypeOther:       BaseFeeOther,
}

var urgencyMultipliers = map[parcel.Urgency]float64{
	parcel.UrgencyStandard: MultiplierStandard,
	parcel.UrgencyExpress:  MultiplierExpress,
	parcel.UrgencyUrgent:   MultiplierUrgent,
}

// FeeCalculator is a domain service that computes the deterministic fee
// breakdown of a parcel from its type, weight and urgency.
//
// The calculation is a pure function of its inputs:
//
//	totalFee = round2((baseFee + weightCharge) * urgencyMultiplier - discount)
//
// The discount and coupon code are pass-through: they are preserved across
// recalculations triggered by detail edits.
type FeeCalculator struct{}

// NewFeeCalculator creates a new FeeCalculator instance.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{}
}

// ValidateInputs checks every fee-relevant input and joins all violations
// into one error, so a caller can surface the complete list at once.
func (FeeCalculator) ValidateInputs(parcelType parcel.ParcelType, weightKg float64, urgency parcel.Urgency) error {
	var violations []error

	if err := parcelType.Validate(); err != nil {
		violations = append(violations, err)
	}
	if weightKg < parcel.MinWeightKg || weightKg > parcel.MaxWeightKg {
		violations = append(violations, errs.NewValueIsOutOfRangeError("weight", weightKg,
			parcel.MinWeightKg, parcel.MaxWeightKg))
	}
	if urgency != "" {
		if err := urgency.Validate(); err != nil {
			violations = append(violations, err)
		}
	}

	return errors.Join(violations...)
}

// Calculate computes the fee breakdown for the given inputs, carrying the
// discount and coupon code through unchanged.
//
// Returns:
//   - parcel.Pricing: the breakdown when all inputs are valid
//   - error: joined validation errors otherwise
func (c FeeCalculator) Calculate(parcelType parcel.ParcelType, weightKg float64, urgency parcel.Urgency, discount float64, couponCode string) (parcel.Pricing, error) {
	if err := c.ValidateInputs(parcelType, weightKg, urgency); err != nil {
		return parcel.Pricing{}, err
	}
	if urgency == "" {
		urgency = parcel.UrgencyStandard
	}
	if discount < 0 {
		return parcel.Pricing{}, errs.NewValueIsInvalidErrorWithCause("discount",
			fmt.Errorf("%g is negative", discount))
	}

	baseFee := baseFees[parcelType]
	weightCharge := weightChargeFor(weightKg)
	multiplier := urgencyMultipliers[urgency]

	subtotal := baseFee + weightCharge
	urgencyCharge := round2(subtotal * (multiplier - 1))
	totalFee := round2(subtotal*multiplier - discount)
	if totalFee < 0 {
		totalFee = 0
	}

	return parcel.NewPricing(baseFee, weightCharge, urgencyCharge, discount, totalFee, couponCode)
}

// weightChargeFor returns the surcharge of the tier the weight falls into.
func weightChargeFor(weightKg float64) float64 {
	switch {
	case weightKg <= WeightTier1MaxKg:
		return WeightTier1Charge
	case weightKg <= WeightTier2MaxKg:
		return WeightTier2Charge
	case weightKg <= WeightTier3MaxKg:
		return WeightTier3Charge
	case weightKg <= WeightTier4MaxKg:
		return WeightTier4Charge
	default:
		return WeightTier5Charge
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
