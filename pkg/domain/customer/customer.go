package customer

import (
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/bankledger/pkg/domain"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Customer owns accounts. Profile fields are immutable once created.
type Customer struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name" validate:"required,max=100"`
	Email     string    `json:"email" validate:"omitempty,email,max=255"`
	Phone     string    `json:"phone" validate:"omitempty,max=32"`
	CreatedAt time.Time `json:"created_at"`
}

// New creates a validated, unsaved Customer.
func New(name, email, phone string) (*Customer, error) {
	c := &Customer{
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		Phone:     strings.TrimSpace(phone),
		CreatedAt: time.Now().UTC(),
	}
	if err := validate.Struct(c); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err.Error())
	}
	return c, nil
}
