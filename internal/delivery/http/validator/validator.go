// Package validator adapts go-playground/validator for echo request binding.
package validator

import (
	"errors"
	"net/http"

	playground "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator wraps a validator.Validate instance for echo.
type CustomValidator struct {
	validate *playground.Validate
}

// New builds the validator used by the HTTP server. Struct tags use the
// standard `validate` key.
func New() *CustomValidator {
	return &CustomValidator{
		validate: playground.New(playground.WithRequiredStructEnabled()),
	}
}

// Validate implements echo.Validator. Tag violations surface as a 400 with
// the first failing field named.
func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validate.Struct(i); err != nil {
		var fieldErrs playground.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			first := fieldErrs[0]

			return echo.NewHTTPError(http.StatusBadRequest,
				"field '"+first.Field()+"' failed on '"+first.Tag()+"' validation")
		}

		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return nil
}
