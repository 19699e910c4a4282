package customer

import (
	"time"

	"github.com/amirasaad/bankledger/pkg/domain/customer"
)

// CreateCustomerRequest represents the request body for registering a customer.
type CreateCustomerRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Email string `json:"email" validate:"omitempty,email,max=255"`
	Phone string `json:"phone" validate:"omitempty,max=32"`
}

// CustomerDTO is the API representation of a customer.
type CustomerDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDTO converts a domain customer.
func ToDTO(c *customer.Customer) CustomerDTO {
	return CustomerDTO{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone, CreatedAt: c.CreatedAt}
}
