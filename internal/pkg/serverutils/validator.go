package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct tag validation and flattens failures into a
// single error message.
func ValidateRequest(payload interface{}) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	messages := make([]string, len(validationErrors))
	for i, fieldErr := range validationErrors {
		messages[i] = fmt.Sprintf("field '%s' failed on rule '%s'", fieldErr.Field(), fieldErr.Tag())
	}
	return fmt.Errorf("validation failed: %s", strings.Join(messages, "; "))
}
