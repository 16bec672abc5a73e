package records

import (
	"fmt"
	"time"

	"erdash/pkg/domain"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// NewUser is a directory entry candidate submitted to CreateUser.
type NewUser struct {
	Email      string      `json:"email"`
	Name       string      `json:"name"`
	Role       domain.Role `json:"role"`
	Department string      `json:"department"`
	Password   string      `json:"password"`
}

func (u NewUser) validate() error {
	err := validation.ValidateStruct(&u,
		validation.Field(&u.Email, validation.Required, is.EmailFormat),
		validation.Field(&u.Name, validation.Required, validation.Length(1, 120)),
		validation.Field(&u.Role, validation.Required, validation.In(domain.RoleDoctor, domain.RoleStaff, domain.RoleManagement)),
		validation.Field(&u.Password, validation.Required.Error("password cannot be blank")),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUser, err)
	}
	return nil
}

var weekdays = func() []any {
	out := make([]any, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		out = append(out, d.String())
	}
	return out
}()

func validateShift(e domain.ShiftEntry) error {
	err := validation.ValidateStruct(&e,
		validation.Field(&e.Day, validation.Required, validation.In(weekdays...).Error("must be a weekday name")),
		validation.Field(&e.Hours, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidShift, err)
	}
	return nil
}
