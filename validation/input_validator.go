// Package validation checks the values an administrator types into the
// console before anything is sent to the backend.
package validation

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/giygas/medicines-admin/interfaces"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrMissingFields is returned when the name or price is blank after trimming
	ErrMissingFields = errors.New("name and price are required")
	// ErrInvalidPrice is returned when a price is not a finite number above zero
	ErrInvalidPrice = errors.New("price must be a finite number greater than zero")
)

// Compile-time check to ensure InputValidatorImpl implements InputValidator
var _ interfaces.InputValidator = (*InputValidatorImpl)(nil)

// CreateForm is the creation form after trimming
type CreateForm struct {
	Name  string `validate:"required"`
	Price string `validate:"required"`
}

// InputValidatorImpl implements the interfaces.InputValidator interface
type InputValidatorImpl struct {
	validate *validator.Validate
}

// NewInputValidator creates a new input validator
func NewInputValidator() *InputValidatorImpl {
	return &InputValidatorImpl{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// ValidateCreate trims both fields, requires them and parses the price
func (v *InputValidatorImpl) ValidateCreate(rawName, rawPrice string) (string, float64, error) {
	form := CreateForm{
		Name:  strings.TrimSpace(rawName),
		Price: strings.TrimSpace(rawPrice),
	}

	if err := v.validate.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return "", 0, fmt.Errorf("%w: %s", ErrMissingFields, fieldNames(fieldErrs))
		}
		return "", 0, fmt.Errorf("failed to validate creation form: %w", err)
	}

	price, err := v.ParsePrice(form.Price)
	if err != nil {
		return "", 0, err
	}

	return form.Name, price, nil
}

// ParsePrice accepts surrounding whitespace and rejects anything that is not
// a finite number strictly greater than zero
func (v *InputValidatorImpl) ParsePrice(raw string) (float64, error) {
	trimmed := strings.TrimSpace(raw)

	price, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}

	if err := v.validate.Var(price, "gt=0"); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPrice, raw)
	}

	return price, nil
}

// FormatPriceValue renders a price the way it is sent to the backend:
// the shortest decimal that round-trips (5, 3.5, 0.1)
func FormatPriceValue(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}

func fieldNames(errs validator.ValidationErrors) string {
	names := make([]string, 0, len(errs))
	for _, fe := range errs {
		names = append(names, strings.ToLower(fe.Field()))
	}
	return strings.Join(names, ", ")
}
