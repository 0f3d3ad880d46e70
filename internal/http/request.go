package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kjstillabower/weather-lookup-service/internal/validation"
)

// forecastRequest is the coordinate pair submitted by the form or the query string.
type forecastRequest struct {
	Latitude  string `validate:"required,max=32,coord_lat"`
	Longitude string `validate:"required,max=32,coord_lon"`
}

// newForecastRequest trims surrounding whitespace, which the form tends to carry.
func newForecastRequest(lat, lon string) forecastRequest {
	return forecastRequest{
		Latitude:  strings.TrimSpace(lat),
		Longitude: strings.TrimSpace(lon),
	}
}

var requestValidator = newRequestValidator()

func newRequestValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("coord_lat", func(fl validator.FieldLevel) bool {
		return validation.IsValidLatitude(fl.Field().String())
	})
	_ = v.RegisterValidation("coord_lon", func(fl validator.FieldLevel) bool {
		return validation.IsValidLongitude(fl.Field().String())
	})
	return v
}

func validateRequest(req forecastRequest) error {
	return requestValidator.Struct(req)
}

// describeInvalid names the first failing field for the JSON error message.
func describeInvalid(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "Latitude":
			return "lat must be a number between -90 and 90"
		case "Longitude":
			return "lon must be a number between -180 and 180"
		}
	}
	return MsgInvalidCoordinates
}
