package model

import (
	"time"

	"github.com/google/uuid"
)

// Subscription status constants
const (
	SubscriptionActive   = "active"
	SubscriptionInactive = "inactive"
)

// Account is the authenticated pharmacy entity (the tenant). Rows are
// created and destroyed by the signup flow, which lives outside this
// service; here the account is only read and partially updated.
type Account struct {
	ID                 uuid.UUID `json:"id" db:"id"`
	Email              string    `json:"email" db:"email"`
	PasswordHash       string    `json:"-" db:"password_hash"`
	PharmacyName       string    `json:"pharmacyName" db:"pharmacy_name"`
	PharmacyPhone      *string   `json:"pharmacyPhone" db:"pharmacy_phone"`
	SubscriptionStatus string    `json:"subscriptionStatus" db:"subscription_status"`
	AddressLine1       *string   `json:"addressLine1" db:"address_line1"`
	AddressLine2       *string   `json:"addressLine2" db:"address_line2"`
	City               *string   `json:"city" db:"city"`
	State              *string   `json:"state" db:"state"`
	ZipCode            *string   `json:"zipCode" db:"zip_code"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt" db:"updated_at"`
}

// UpdateAccountRequest carries a partial account update. Only non-nil
// fields are mapped to columns, so omitted fields are never written.
type UpdateAccountRequest struct {
	Email         *string `json:"email" binding:"omitempty,email"`
	PharmacyName  *string `json:"pharmacyName"`
	PharmacyPhone *string `json:"pharmacyPhone"`
	AddressLine1  *string `json:"addressLine1"`
	AddressLine2  *string `json:"addressLine2"`
	City          *string `json:"city"`
	State         *string `json:"state"`
	ZipCode       *string `json:"zipCode"`
}

// Columns maps the provided camelCase fields to their snake_case
// columns. Nil fields are skipped entirely.
func (r *UpdateAccountRequest) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if r.Email != nil {
		cols["email"] = *r.Email
	}
	if r.PharmacyName != nil {
		cols["pharmacy_name"] = *r.PharmacyName
	}
	if r.PharmacyPhone != nil {
		cols["pharmacy_phone"] = *r.PharmacyPhone
	}
	if r.AddressLine1 != nil {
		cols["address_line1"] = *r.AddressLine1
	}
	if r.AddressLine2 != nil {
		cols["address_line2"] = *r.AddressLine2
	}
	if r.City != nil {
		cols["city"] = *r.City
	}
	if r.State != nil {
		cols["state"] = *r.State
	}
	if r.ZipCode != nil {
		cols["zip_code"] = *r.ZipCode
	}
	return cols
}
