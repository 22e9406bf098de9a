package model

import (
	"regexp"

	"github.com/google/uuid"
)

// Role type constants, matching the role_type CHECK constraint.
const (
	RolePharmacistPIC      = "Pharmacist-PIC"
	RolePharmacist         = "Pharmacist"
	RolePharmacyTechnician = "Pharmacy Technician"
	RoleIntern             = "Intern"
	RolePharmacy           = "Pharmacy"
)

// DOB component patterns, matching the column CHECK constraints. Each
// component is optional and validated independently.
var (
	dobMonthRe = regexp.MustCompile(`^(0[1-9]|1[0-2])$`)
	dobDayRe   = regexp.MustCompile(`^(0[1-9]|[12][0-9]|3[01])$`)
	dobYearRe  = regexp.MustCompile(`^(19|20)\d{2}$`)
)

func ValidDOBMonth(v string) bool { return dobMonthRe.MatchString(v) }
func ValidDOBDay(v string) bool   { return dobDayRe.MatchString(v) }
func ValidDOBYear(v string) bool  { return dobYearRe.MatchString(v) }

// MemberProfile is an individual team member belonging to an account,
// the unit of bookmark, activity and training tracking.
type MemberProfile struct {
	Base
	AccountID     uuid.UUID `json:"accountId" db:"account_id"`
	RoleType      string    `json:"roleType" db:"role_type"`
	FirstName     string    `json:"firstName" db:"first_name"`
	LastName      string    `json:"lastName" db:"last_name"`
	Email         *string   `json:"email" db:"email"`
	Phone         *string   `json:"phone" db:"phone"`
	DOBMonth      *string   `json:"dobMonth" db:"dob_month"`
	DOBDay        *string   `json:"dobDay" db:"dob_day"`
	DOBYear       *string   `json:"dobYear" db:"dob_year"`
	LicenseNumber *string   `json:"licenseNumber" db:"license_number"`
	NABPEProfile  *string   `json:"nabpEProfileId" db:"nabp_eprofile_id"`
	IsActive      bool      `json:"isActive" db:"is_active"`
}

// CreateProfileRequest carries profile creation parameters. Role and
// names are mandatory; everything else is optional.
type CreateProfileRequest struct {
	RoleType      string  `json:"roleType" binding:"required,memberrole"`
	FirstName     string  `json:"firstName" binding:"required"`
	LastName      string  `json:"lastName" binding:"required"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	DOBMonth      *string `json:"dobMonth"`
	DOBDay        *string `json:"dobDay"`
	DOBYear       *string `json:"dobYear"`
	LicenseNumber *string `json:"licenseNumber"`
	NABPEProfile  *string `json:"nabpEProfileId"`
}

// UpdateProfileRequest carries a partial profile update.
type UpdateProfileRequest struct {
	RoleType      *string `json:"roleType" binding:"omitempty,memberrole"`
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Email         *string `json:"email" binding:"omitempty,email"`
	Phone         *string `json:"phone"`
	DOBMonth      *string `json:"dobMonth"`
	DOBDay        *string `json:"dobDay"`
	DOBYear       *string `json:"dobYear"`
	LicenseNumber *string `json:"licenseNumber"`
	NABPEProfile  *string `json:"nabpEProfileId"`
}

// ValidRole reports whether the role matches the enumerated role types.
func ValidRole(role string) bool {
	switch role {
	case RolePharmacistPIC, RolePharmacist, RolePharmacyTechnician, RoleIntern, RolePharmacy:
		return true
	}
	return false
}
