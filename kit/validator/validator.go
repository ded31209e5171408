package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = func() *validator.Validate {
	v := validator.New()
	// Request structs carry gin binding tags; run the same rules here.
	v.SetTagName("binding")
	return v
}()

// Verify runs struct tag validation on req and returns the first violation.
func Verify(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var invalid *validator.InvalidValidationError
		if errors.As(err, &invalid) {
			return errors.Wrap(err, "validate request")
		}
		for _, fieldErr := range err.(validator.ValidationErrors) {
			return errors.Errorf("field %s failed on %s", fieldErr.Field(), fieldErr.Tag())
		}
	}
	return nil
}
