package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rxhub/member-portal-api/internal/model"
	"github.com/rxhub/member-portal-api/internal/repository"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
)

type profileRepository struct {
	BaseRepository
}

func NewProfileRepository(base BaseRepository) repository.ProfileRepository {
	return &profileRepository{base}
}

func (r *profileRepository) Create(ctx context.Context, profile *model.MemberProfile) error {
	query := `
		INSERT INTO member_profiles (
			id, account_id, role_type, first_name, last_name, email,
			phone, dob_month, dob_day, dob_year, license_number,
			nabp_eprofile_id, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	profile.ID = uuid.New()
	profile.IsActive = true
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, query,
			profile.ID,
			profile.AccountID,
			profile.RoleType,
			profile.FirstName,
			profile.LastName,
			profile.Email,
			profile.Phone,
			profile.DOBMonth,
			profile.DOBDay,
			profile.DOBYear,
			profile.LicenseNumber,
			profile.NABPEProfile,
			profile.IsActive,
			profile.CreatedAt,
			profile.UpdatedAt,
		)
		return err
	})
}

func (r *profileRepository) Get(ctx context.Context, id uuid.UUID) (*model.MemberProfile, error) {
	query := `
		SELECT * FROM member_profiles
		WHERE id = $1
	`

	var profile model.MemberProfile
	if err := r.db.GetContext(ctx, &profile, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("profile", err)
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) ListActive(ctx context.Context, accountID uuid.UUID) ([]*model.MemberProfile, error) {
	query := `
		SELECT * FROM member_profiles
		WHERE account_id = $1 AND is_active = true
		ORDER BY created_at ASC
	`

	var profiles []*model.MemberProfile
	if err := r.db.SelectContext(ctx, &profiles, query, accountID); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

func (r *profileRepository) Update(ctx context.Context, profile *model.MemberProfile) error {
	query := `
		UPDATE member_profiles SET
			role_type = $1,
			first_name = $2,
			last_name = $3,
			email = $4,
			phone = $5,
			dob_month = $6,
			dob_day = $7,
			dob_year = $8,
			license_number = $9,
			nabp_eprofile_id = $10,
			updated_at = $11
		WHERE id = $12
	`

	result, err := r.db.ExecContext(ctx, query,
		profile.RoleType,
		profile.FirstName,
		profile.LastName,
		profile.Email,
		profile.Phone,
		profile.DOBMonth,
		profile.DOBDay,
		profile.DOBYear,
		profile.LicenseNumber,
		profile.NABPEProfile,
		time.Now(),
		profile.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("profile", nil)
	}

	return nil
}

func (r *profileRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE member_profiles
		SET is_active = false, updated_at = NOW()
		WHERE id = $1 AND is_active = true
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("profile", nil)
	}

	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM member_profiles
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("profile", nil)
	}

	return nil
}
