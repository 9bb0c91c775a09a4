// Package validation checks product form input before it reaches the inventory.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"mini-inventory/internal/model"

	"github.com/go-playground/validator/v10"
)

// Messages shown for each invalid product field.
var fieldMessages = map[string]string{
	"name":        "Product name is required",
	"price":       "Price must be greater than 0",
	"description": "Description is required",
	"quantity":    "Quantity must be greater than 0",
}

// ProductValidator validates submitted product fields.
type ProductValidator struct {
	validate *validator.Validate
}

// NewProductValidator creates a validator for product forms.
func NewProductValidator() *ProductValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// notblank rejects empty and whitespace-only strings.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &ProductValidator{validate: v}
}

// Validate returns a *model.ValidationError listing every invalid field, or nil.
func (v *ProductValidator) Validate(fields model.ProductFields) error {
	err := v.validate.Struct(fields)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	result := &model.ValidationError{Fields: make(map[string]string, len(validationErrors))}
	for _, fieldErr := range validationErrors {
		msg, ok := fieldMessages[fieldErr.Field()]
		if !ok {
			msg = "failed on rule: " + fieldErr.Tag()
		}
		result.Fields[fieldErr.Field()] = msg
	}
	return result
}
