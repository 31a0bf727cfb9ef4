package checkout

import (
	"net/mail"
	"strings"
)

// NonFieldErrors keys errors that belong to the form as a whole rather
// than a single field, like an empty basket.
const NonFieldErrors = "non_field_errors"

type OrderForm struct {
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name"  form:"last_name"`
	Phone     string `json:"phone"      form:"phone"`
	Email     string `json:"email"      form:"email"`
}

// Validate returns a field name to message map, empty when the form is ok.
func (f *OrderForm) Validate() map[string]string {
	errs := make(map[string]string)
	if strings.TrimSpace(f.FirstName) == "" {
		errs["first_name"] = "this field is required"
	}
	if strings.TrimSpace(f.LastName) == "" {
		errs["last_name"] = "this field is required"
	}
	if strings.TrimSpace(f.Phone) == "" {
		errs["phone"] = "this field is required"
	}
	if strings.TrimSpace(f.Email) == "" {
		errs["email"] = "this field is required"
	} else if _, err := mail.ParseAddress(f.Email); err != nil {
		errs["email"] = "enter a valid email address"
	}
	return errs
}
