package profile

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxhub/member-portal-api/internal/model"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
	"github.com/rxhub/member-portal-api/pkg/logger"
)

type fakeProfiles struct {
	stored      map[uuid.UUID]*model.MemberProfile
	creates     int
	updates     int
	deactivates int
	deletes     int
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{stored: make(map[uuid.UUID]*model.MemberProfile)}
}

func (r *fakeProfiles) Create(ctx context.Context, p *model.MemberProfile) error {
	r.creates++
	p.ID = uuid.New()
	p.IsActive = true
	r.stored[p.ID] = p
	return nil
}

func (r *fakeProfiles) Get(ctx context.Context, id uuid.UUID) (*model.MemberProfile, error) {
	p, ok := r.stored[id]
	if !ok {
		return nil, apperrors.NotFound("profile", nil)
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProfiles) ListActive(ctx context.Context, accountID uuid.UUID) ([]*model.MemberProfile, error) {
	var out []*model.MemberProfile
	for _, p := range r.stored {
		if p.AccountID == accountID && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProfiles) Update(ctx context.Context, p *model.MemberProfile) error {
	r.updates++
	if _, ok := r.stored[p.ID]; !ok {
		return apperrors.NotFound("profile", nil)
	}
	r.stored[p.ID] = p
	return nil
}

func (r *fakeProfiles) Deactivate(ctx context.Context, id uuid.UUID) error {
	r.deactivates++
	p, ok := r.stored[id]
	if !ok {
		return apperrors.NotFound("profile", nil)
	}
	p.IsActive = false
	return nil
}

func (r *fakeProfiles) Delete(ctx context.Context, id uuid.UUID) error {
	r.deletes++
	if _, ok := r.stored[id]; !ok {
		return apperrors.NotFound("profile", nil)
	}
	delete(r.stored, id)
	return nil
}

func strptr(s string) *string { return &s }

func validCreateRequest() *model.CreateProfileRequest {
	return &model.CreateProfileRequest{
		RoleType:  model.RolePharmacistPIC,
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     strptr("dana@rxhub.test"),
		DOBMonth:  strptr("04"),
		DOBDay:    strptr("17"),
		DOBYear:   strptr("1985"),
	}
}

func TestCreateProfile(t *testing.T) {
	repo := newFakeProfiles()
	svc := NewService(repo, logger.Nop())
	accountID := uuid.New()

	profile, err := svc.CreateProfile(context.Background(), accountID, validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, accountID, profile.AccountID)
	assert.Equal(t, model.RolePharmacistPIC, profile.RoleType)
	assert.NotEqual(t, uuid.Nil, profile.ID)
	assert.Equal(t, 1, repo.creates)
}

func TestCreateProfileInvalidRole(t *testing.T) {
	repo := newFakeProfiles()
	svc := NewService(repo, logger.Nop())

	req := validCreateRequest()
	req.RoleType = "Astronaut"

	_, err := svc.CreateProfile(context.Background(), uuid.New(), req)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
	assert.Zero(t, repo.creates, "invalid input must never reach the repository")
}

func TestCreateProfileDOBValidation(t *testing.T) {
	tests := []struct {
		name  string
		month *string
		day   *string
		year  *string
		valid bool
	}{
		{"all valid", strptr("12"), strptr("31"), strptr("1999"), true},
		{"all omitted", nil, nil, nil, true},
		{"empty strings allowed", strptr(""), strptr(""), strptr(""), true},
		{"month zero", strptr("00"), nil, nil, false},
		{"month thirteen", strptr("13"), nil, nil, false},
		{"month without leading zero", strptr("4"), nil, nil, false},
		{"day zero", nil, strptr("00"), nil, false},
		{"day thirty-two", nil, strptr("32"), nil, false},
		{"year eighteen-hundreds", nil, nil, strptr("1899"), false},
		{"year twenty-one-hundred", nil, nil, strptr("2100"), false},
		{"year two digits", nil, nil, strptr("85"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeProfiles()
			svc := NewService(repo, logger.Nop())

			req := validCreateRequest()
			req.DOBMonth = tt.month
			req.DOBDay = tt.day
			req.DOBYear = tt.year

			_, err := svc.CreateProfile(context.Background(), uuid.New(), req)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
				assert.Zero(t, repo.creates)
			}
		})
	}
}

func TestUpdateProfileAppliesOnlyProvidedFields(t *testing.T) {
	repo := newFakeProfiles()
	svc := NewService(repo, logger.Nop())

	created, err := svc.CreateProfile(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(context.Background(), created.ID, &model.UpdateProfileRequest{
		FirstName: strptr("Dani"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Dani", updated.FirstName)
	assert.Equal(t, "Reyes", updated.LastName)
	assert.Equal(t, model.RolePharmacistPIC, updated.RoleType)
}

func TestUpdateProfileRejectsInvalidResult(t *testing.T) {
	repo := newFakeProfiles()
	svc := NewService(repo, logger.Nop())

	created, err := svc.CreateProfile(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.UpdateProfile(context.Background(), created.ID, &model.UpdateProfileRequest{
		DOBMonth: strptr("13"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrBadRequest, apperrors.CodeOf(err))
	assert.Zero(t, repo.updates)
}

func TestUpdateProfileNotFound(t *testing.T) {
	svc := NewService(newFakeProfiles(), logger.Nop())

	_, err := svc.UpdateProfile(context.Background(), uuid.New(), &model.UpdateProfileRequest{
		FirstName: strptr("Nobody"),
	})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeactivateProfileHidesFromList(t *testing.T) {
	repo := newFakeProfiles()
	svc := NewService(repo, logger.Nop())
	accountID := uuid.New()

	created, err := svc.CreateProfile(context.Background(), accountID, validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateProfile(context.Background(), created.ID))

	profiles, err := svc.ListProfiles(context.Background(), accountID)
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestDeleteProfile(t *testing.T) {
	repo := newFakeProfiles()
	svc := NewService(repo, logger.Nop())

	created, err := svc.CreateProfile(context.Background(), uuid.New(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProfile(context.Background(), created.ID))

	_, err = svc.GetProfile(context.Background(), created.ID)
	assert.True(t, apperrors.IsNotFound(err))
}
