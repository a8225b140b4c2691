package validator

import (
	"fmt"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/movietick/booking-backend/internal/domain"
)

const (
	ErrDefaultInvalid = "is invalid"
	ErrMinLength      = "must contain at least %s items or characters"
	ErrMaxLength      = "must contain at most %s items or characters"
	ErrMinValue       = "must be at least %s"
	ErrMaxValue       = "must be at most %s"
)

func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("payment_method", validatePaymentMethod)

	return validate
}

func validatePaymentMethod(fl validator.FieldLevel) bool {
	switch domain.PaymentMethod(fl.Field().String()) {
	case domain.PaymentMethodCreditCard,
		domain.PaymentMethodDebitCard,
		domain.PaymentMethodUPI,
		domain.PaymentMethodWallet,
		domain.PaymentMethodNetBanking:
		return true
	}

	return false
}

// min/max bound lengths for strings and collections but values for numbers,
// so the message has to follow the field's kind.
func isNumericKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}

	return false
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		if isNumericKind(err.Kind()) {
			return fmt.Sprintf(ErrMinValue, err.Param())
		}
		return fmt.Sprintf(ErrMinLength, err.Param())
	case "max":
		if isNumericKind(err.Kind()) {
			return fmt.Sprintf(ErrMaxValue, err.Param())
		}
		return fmt.Sprintf(ErrMaxLength, err.Param())
	case "uuid4":
		return "must be a valid hold token"
	case "payment_method":
		return "must be one of CREDIT_CARD, DEBIT_CARD, UPI, WALLET, NET_BANKING"
	case "alphanum":
		return "must contain only letters and digits"
	default:
		return ErrDefaultInvalid
	}
}
