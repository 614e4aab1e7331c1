package domain

import "github.com/google/uuid"

// Address is a value object shared by Member and Delivery.
type Address struct {
	City    string `json:"city"`
	Street  string `json:"street"`
	Zipcode string `json:"zipcode"`
}

// Member references no orders; the orders table carries the member id
// and reverse traversal goes through the order repository.
type Member struct {
	ID      string
	Name    string
	Address Address
}

func NewMember(name string, addr Address) (*Member, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	return &Member{ID: uuid.NewString(), Name: name, Address: addr}, nil
}
