package validator

import (
	"math"

	"github.com/go-playground/validator/v10"
)

type validEnum interface{ Valid() bool }

func RegisterCustomValidations(validate *validator.Validate) {
	validate.RegisterValidation("lat", validateLat)
	validate.RegisterValidation("lng", validateLng)
	validate.RegisterValidation("radius_m", validateRadiusM)
	validate.RegisterValidation("hazard_type", validateEnum)
	validate.RegisterValidation("provenance", validateEnum)
	validate.RegisterValidation("severity", validateEnum)
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return !math.IsNaN(lat) && lat >= -90.0 && lat <= 90.0
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return !math.IsNaN(lng) && lng >= -180.0 && lng <= 180.0
}

func validateRadiusM(fl validator.FieldLevel) bool {
	radius := fl.Field().Float()
	return radius > 0 && radius <= 50000.0
}

// validateEnum works for any string enum implementing Valid().
func validateEnum(fl validator.FieldLevel) bool {
	if v, ok := fl.Field().Interface().(validEnum); ok {
		return v.Valid()
	}
	return false
}
