package customer

import (
	"github.com/amirasaad/corebank/pkg/domain/customer"
	"github.com/amirasaad/corebank/pkg/dto"
)

//revive:disable

// CreateCustomerRequest represents the request body for registering a customer.
type CreateCustomerRequest struct {
	CustomerID     string `json:"customerId" validate:"omitempty,uuid"`
	Identification string `json:"identification" validate:"required,min=5,max=20,uppercase,alphanum"`
	FirstName      string `json:"firstName" validate:"required,min=2,max=50"`
	LastName       string `json:"lastName" validate:"required,min=2,max=50"`
	Gender         string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	Age            int    `json:"age" validate:"required,gt=0"`
	Password       string `json:"password" validate:"required,min=4,max=100"`
	Status         string `json:"customerStatus" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED DELETED LOCKED CLOSED"`
	Address        string `json:"address" validate:"max=255"`
	Email          string `json:"email" validate:"omitempty,email"`
}

// UpdateCustomerRequest represents the request body for patching a customer.
// Omitted fields are left unchanged.
type UpdateCustomerRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,min=2,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,min=2,max=50"`
	Address   *string `json:"address" validate:"omitempty,max=255"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Status    *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED DELETED LOCKED CLOSED"`
}

//revive:enable

func toCustomerRead(c *customer.Customer) dto.CustomerRead {
	return dto.CustomerRead{
		CustomerID:     c.CustomerID,
		Identification: c.Identification,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		FullName:       c.FullName(),
		Gender:         string(c.Gender),
		Age:            c.Age,
		Address:        c.Address,
		Email:          c.Email,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
