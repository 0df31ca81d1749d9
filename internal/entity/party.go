package entity

import (
	"github.com/google/uuid"
)

// db model
type Buyer struct {
	Id                uuid.UUID `json:"id" db:"id"`
	OwnerId           uuid.UUID `json:"ownerId" db:"owner_id"`
	BuyersCompanyName string    `json:"buyersCompanyName" db:"buyers_company_name"`
	ContactName       string    `json:"contactName" db:"contact_name"`
	ContactEmail      string    `json:"contactEmail" db:"contact_email"`
	Status            string    `json:"status" db:"status"`
	IsDeleted         bool      `json:"isDeleted" db:"is_deleted"`
}

// db model
type BusinessOwner struct {
	Id           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	BusinessName string    `json:"businessName" db:"business_name"`
	Status       string    `json:"status" db:"status"`
}

func (o *BusinessOwner) FullName() string {
	return o.FirstName + " " + o.LastName
}
