package parcel

import (
	"fmt"
	"strings"

	"parceltrack/internal/pkg/errs"
)

// Physical attribute bounds for parcel details.
const (
	MinWeightKg       = 0.1
	MaxWeightKg       = 50.0
	MinDescriptionLen = 1
	MaxDescriptionLen = 500
)

// ParcelType categorizes the contents of a parcel and selects the base fee.
type ParcelType string

const (
	TypeDocument    ParcelType = "document"
	TypePackage     ParcelType = "package"
	TypeFragile     ParcelType = "fragile"
	TypeElectronics ParcelType = "electronics"
	TypeOther       ParcelType = "other"
)

// AllParcelTypes returns every valid parcel type.
func AllParcelTypes() []ParcelType {
	return []ParcelType{TypeDocument, TypePackage, TypeFragile, TypeElectronics, TypeOther}
}

// Validate checks the parcel type against the known set.
func (t ParcelType) Validate() error {
	for _, known := range AllParcelTypes() {
		if t == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("parcelDetails.type",
		fmt.Errorf("%q is not a valid parcel type", string(t)))
}

// Dimensions holds the optional physical dimensions of a parcel in
// centimeters. All three components must be positive.
type Dimensions struct {
	length float64
	width  float64
	height float64
}

// NewDimensions creates validated Dimensions; each component must be > 0.
func NewDimensions(length, width, height float64) (Dimensions, error) {
	components := map[string]float64{
		"dimensions.length": length,
		"dimensions.width":  width,
		"dimensions.height": height,
	}
	for name, value := range components {
		if value <= 0 {
			return Dimensions{}, errs.NewValueIsInvalidErrorWithCause(name,
				fmt.Errorf("%g is not greater than 0", value))
		}
	}
	return Dimensions{length: length, width: width, height: height}, nil
}

// Length returns the length component.
func (d Dimensions) Length() float64 { return d.length }

// Width returns the width component.
func (d Dimensions) Width() float64 { return d.width }

// Height returns the height component.
func (d Dimensions) Height() float64 { return d.height }

// DimensionsPatch carries a partial dimensions update.
type DimensionsPatch struct {
	Length *float64
	Width  *float64
	Height *float64
}

// Details describes the physical attributes of a parcel: contents type,
// weight, optional dimensions, a description, and an optional declared value.
// Weight and type drive the fee calculation.
type Details struct {
	parcelType    ParcelType
	weightKg      float64
	dimensions    *Dimensions
	description   string
	declaredValue *float64
}

// NewDetails creates validated parcel details.
//
// Rules:
//   - type must be a known ParcelType
//   - weight must be within [MinWeightKg, MaxWeightKg]
//   - description must be 1-500 characters
//   - declared value, when present, must not be negative
func NewDetails(parcelType ParcelType, weightKg float64, dimensions *Dimensions, description string, declaredValue *float64) (Details, error) {
	if err := parcelType.Validate(); err != nil {
		return Details{}, err
	}

	if weightKg < MinWeightKg || weightKg > MaxWeightKg {
		return Details{}, errs.NewValueIsOutOfRangeError("parcelDetails.weight", weightKg,
			MinWeightKg, MaxWeightKg)
	}

	description = strings.TrimSpace(description)
	if len(description) < MinDescriptionLen || len(description) > MaxDescriptionLen {
		return Details{}, errs.NewValueIsOutOfRangeError("parcelDetails.description length",
			len(description), MinDescriptionLen, MaxDescriptionLen)
	}

	if declaredValue != nil && *declaredValue < 0 {
		return Details{}, errs.NewValueIsInvalidErrorWithCause("parcelDetails.value",
			fmt.Errorf("%g is negative", *declaredValue))
	}

	return Details{
		parcelType:    parcelType,
		weightKg:      weightKg,
		dimensions:    dimensions,
		description:   description,
		declaredValue: declaredValue,
	}, nil
}

// Type returns the contents category.
func (d Details) Type() ParcelType { return d.parcelType }

// WeightKg returns the parcel weight in kilograms.
func (d Details) WeightKg() float64 { return d.weightKg }

// Dimensions returns the optional physical dimensions, nil when unspecified.
func (d Details) Dimensions() *Dimensions { return d.dimensions }

// Description returns the contents description.
func (d Details) Description() string { return d.description }

// DeclaredValue returns the optional declared value, nil when unspecified.
func (d Details) DeclaredValue() *float64 { return d.declaredValue }

// DetailsPatch carries a partial details update. Only non-nil leaf fields
// overwrite the current values.
type DetailsPatch struct {
	Type          *ParcelType
	WeightKg      *float64
	Dimensions    *DimensionsPatch
	Description   *string
	DeclaredValue *float64
}

// Apply merges the patch over the details and revalidates the result.
// A dimensions patch over absent dimensions must supply all three
// components; partial values on a missing base fail validation.
func (d Details) Apply(patch DetailsPatch) (Details, error) {
	merged := d
	if patch.Type != nil {
		merged.parcelType = *patch.Type
	}
	if patch.WeightKg != nil {
		merged.weightKg = *patch.WeightKg
	}
	if patch.Description != nil {
		merged.description = *patch.Description
	}
	if patch.DeclaredValue != nil {
		merged.declaredValue = patch.DeclaredValue
	}

	dimensions := d.dimensions
	if patch.Dimensions != nil {
		var base Dimensions
		if d.dimensions != nil {
			base = *d.dimensions
		}
		if patch.Dimensions.Length != nil {
			base.length = *patch.Dimensions.Length
		}
		if patch.Dimensions.Width != nil {
			base.width = *patch.Dimensions.Width
		}
		if patch.Dimensions.Height != nil {
			base.height = *patch.Dimensions.Height
		}
		validated, err := NewDimensions(base.length, base.width, base.height)
		if err != nil {
			return Details{}, err
		}
		dimensions = &validated
	}

	return NewDetails(merged.parcelType, merged.weightKg, dimensions, merged.description, merged.declaredValue)
}
