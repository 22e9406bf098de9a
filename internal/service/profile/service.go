// Package profile implements team-member profile CRUD for an account.
package profile

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
	"github.com/rxhub/member-portal-api/pkg/logger"
)

type Service struct {
	profiles repository.ProfileRepository
	logger   *logger.Logger
}

func NewService(profiles repository.ProfileRepository, log *logger.Logger) *Service {
	return &Service{
		profiles: profiles,
		logger:   log.WithComponent("profile"),
	}
}

// CreateProfile validates and creates a team-member profile. All
// validation runs before any database call: a bad DOB component never
// reaches the wire.
func (s *Service) CreateProfile(ctx context.Context, accountID uuid.UUID, req *model.CreateProfileRequest) (*model.MemberProfile, error) {
	if err := validateProfileFields(req.RoleType, req.FirstName, req.LastName, req.DOBMonth, req.DOBDay, req.DOBYear); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	profile := &model.MemberProfile{
		AccountID:     accountID,
		RoleType:      req.RoleType,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		DOBMonth:      req.DOBMonth,
		DOBDay:        req.DOBDay,
		DOBYear:       req.DOBYear,
		LicenseNumber: req.LicenseNumber,
		NABPEProfile:  req.NABPEProfile,
	}

	if err := s.profiles.Create(ctx, profile); err != nil {
		s.logger.Error(err, "failed to create profile")
		return nil, err
	}
	return profile, nil
}

// UpdateProfile applies the provided fields to an existing profile,
// re-validating the result before writing.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.MemberProfile, error) {
	profile, err := s.profiles.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoleType != nil {
		profile.RoleType = *req.RoleType
	}
	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Email != nil {
		profile.Email = req.Email
	}
	if req.Phone != nil {
		profile.Phone = req.Phone
	}
	if req.DOBMonth != nil {
		profile.DOBMonth = req.DOBMonth
	}
	if req.DOBDay != nil {
		profile.DOBDay = req.DOBDay
	}
	if req.DOBYear != nil {
		profile.DOBYear = req.DOBYear
	}
	if req.LicenseNumber != nil {
		profile.LicenseNumber = req.LicenseNumber
	}
	if req.NABPEProfile != nil {
		profile.NABPEProfile = req.NABPEProfile
	}

	if err := validateProfileFields(profile.RoleType, profile.FirstName, profile.LastName, profile.DOBMonth, profile.DOBDay, profile.DOBYear); err != nil {
		return nil, apperrors.BadRequest(err.Error(), err)
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		s.logger.Error(err, "failed to update profile", "profile_id", id.String())
		return nil, err
	}
	return profile, nil
}

// GetProfile fetches one profile by id.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*model.MemberProfile, error) {
	return s.profiles.Get(ctx, id)
}

// ListProfiles returns the account's active profiles in creation
// order.
func (s *Service) ListProfiles(ctx context.Context, accountID uuid.UUID) ([]*model.MemberProfile, error) {
	return s.profiles.ListActive(ctx, accountID)
}

// DeactivateProfile soft-removes the profile (is_active = false).
func (s *Service) DeactivateProfile(ctx context.Context, id uuid.UUID) error {
	return s.profiles.Deactivate(ctx, id)
}

// DeleteProfile hard-deletes the profile and everything scoped to it.
func (s *Service) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	return s.profiles.Delete(ctx, id)
}

// validateProfileFields enforces the mandatory fields and the DOB
// component patterns. Each DOB component is optional and checked
// independently.
func validateProfileFields(role, firstName, lastName string, month, day, year *string) error {
	if role == "" {
		return fmt.Errorf("role is required")
	}
	if !model.ValidRole(role) {
		return fmt.Errorf("invalid role type: %s", role)
	}
	if firstName == "" {
		return fmt.Errorf("first name is required")
	}
	if lastName == "" {
		return fmt.Errorf("last name is required")
	}
	if month != nil && *month != "" && !model.ValidDOBMonth(*month) {
		return fmt.Errorf("invalid date of birth month: %s", *month)
	}
	if day != nil && *day != "" && !model.ValidDOBDay(*day) {
		return fmt.Errorf("invalid date of birth day: %s", *day)
	}
	if year != nil && *year != "" && !model.ValidDOBYear(*year) {
		return fmt.Errorf("invalid date of birth year: %s", *year)
	}
	return nil
}
