package checkout

import (
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Payment method ids as submitted by the payment form.
const (
	MethodCash    = "cash"
	MethodCard    = "card"
	MethodEWallet = "ewallet"
)

// PaymentForm carries everything the payment page collects. Card fields are
// only required when the card method is chosen; they are client-side
// formatted, never charged.
type PaymentForm struct {
	Method     string `json:"method" validate:"required,oneof=cash card ewallet"`
	FullName   string `json:"full_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required"`
	CardNumber string `json:"card_number,omitempty"`
	ExpiryDate string `json:"expiry_date,omitempty"`
	CVV        string `json:"cvv,omitempty"`
}

var (
	phonePattern = regexp.MustCompile(`^[0-9]{10,11}$`)
	digitOnly    = regexp.MustCompile(`[^0-9]`)
)

// Validate computes per-field error messages the way the payment page surfaces
// them inline. An empty map means the form may be submitted. Validation never
// raises: every failure is a field message.
func Validate(v *validator.Validate, form PaymentForm) map[string]string {
	fieldErrors := make(map[string]string)

	if err := v.Struct(form); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			for _, fe := range validationErrors {
				switch fe.Field() {
				case "Method":
					fieldErrors["method"] = "please choose a payment method"
				case "FullName":
					fieldErrors["full_name"] = "please enter your full name"
				case "Email":
					if fe.Tag() == "required" {
						fieldErrors["email"] = "please enter your email"
					} else {
						fieldErrors["email"] = "email is not valid"
					}
				case "Phone":
					fieldErrors["phone"] = "please enter your phone number"
				}
			}
		}
	}

	if _, seen := fieldErrors["phone"]; !seen && form.Phone != "" {
		if !phonePattern.MatchString(strings.ReplaceAll(form.Phone, " ", "")) {
			fieldErrors["phone"] = "phone number is not valid"
		}
	}

	if form.Method == MethodCard {
		switch {
		case form.CardNumber == "":
			fieldErrors["card_number"] = "please enter your card number"
		case len(digitOnly.ReplaceAllString(form.CardNumber, "")) < 16:
			fieldErrors["card_number"] = "card number is not valid"
		}
		if form.ExpiryDate == "" {
			fieldErrors["expiry_date"] = "please enter the expiry date"
		}
		if form.CVV == "" {
			fieldErrors["cvv"] = "please enter the CVV"
		}
	}

	return fieldErrors
}

// FormatCardNumber strips non-digits, caps the number at 16 digits and groups
// it in fours for display, e.g. "4242 4242 4242 4242".
func FormatCardNumber(value string) string {
	digits := digitOnly.ReplaceAllString(value, "")
	if len(digits) > 16 {
		digits = digits[:16]
	}

	var parts []string
	for i := 0; i < len(digits); i += 4 {
		end := i + 4
		if end > len(digits) {
			end = len(digits)
		}
		parts = append(parts, digits[i:end])
	}

	return strings.Join(parts, " ")
}

// Last4 returns the last four digits of a card number, empty when the number
// is too short.
func Last4(cardNumber string) string {
	digits := digitOnly.ReplaceAllString(cardNumber, "")
	if len(digits) < 4 {
		return ""
	}

	return digits[len(digits)-4:]
}
