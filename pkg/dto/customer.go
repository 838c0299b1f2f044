package dto

import "time"

// CustomerCreate is a DTO for registering a customer with the identity service.
// CustomerID is assigned when empty.
type CustomerCreate struct {
	CustomerID     string
	Identification string
	FirstName      string
	LastName       string
	Gender         string
	Age            int
	Password       string // plain text; hashed before it is stored
	Status         string
	Address        string
	Email          string
}

// CustomerUpdate is a DTO for patching a customer. Nil fields are left alone.
type CustomerUpdate struct {
	FirstName *string
	LastName  *string
	Address   *string
	Email     *string
	Status    *string
}

// CustomerRead is the customer as served by the identity service and as
// consumed by its lookup client.
type CustomerRead struct {
	CustomerID     string    `json:"customerId"`
	Identification string    `json:"identification,omitempty"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	FullName       string    `json:"fullName"`
	Gender         string    `json:"gender,omitempty"`
	Age            int       `json:"age,omitempty"`
	Address        string    `json:"address,omitempty"`
	Email          string    `json:"email,omitempty"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
