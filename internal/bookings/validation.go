package bookings

import (
	"errors"
	"strings"

	"railbook/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// validateRequest checks req and reports the first problem in the wording
// shown to travellers. Passengers are checked in list order.
func validateRequest(req *BookRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.NewValidation("Invalid booking request")
	}

	switch fe := verrs[0]; fe.StructField() {
	case "UserID":
		return apperror.NewValidation("A valid user is required to book")
	case "Passengers":
		return apperror.NewValidation("A booking must have between 1 and 6 passengers")
	case "Name":
		return apperror.NewValidation("Please enter names for all passengers")
	case "Age":
		return apperror.NewValidation("Please enter valid ages for all passengers")
	case "Gender":
		return apperror.NewValidation("Gender must be one of Male, Female or Other")
	case "IdempotencyKey":
		return apperror.NewValidation("Idempotency key must be at most 255 characters")
	default:
		return apperror.NewValidation("Invalid value for %s", fe.Field())
	}
}
