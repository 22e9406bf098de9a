package profile

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxhub/member-portal-api/internal/model"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
	"github.com/rxhub/member-portal-api/pkg/event"
	"github.com/rxhub/member-portal-api/pkg/logger"
)

type fakeProfiles struct {
	roster  []*model.MemberProfile
	listErr error
	lists   int
	gets    int
}

func (r *fakeProfiles) Create(ctx context.Context, p *model.MemberProfile) error { return nil }

func (r *fakeProfiles) Get(ctx context.Context, id uuid.UUID) (*model.MemberProfile, error) {
	r.gets++
	for _, p := range r.roster {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.NotFound("profile", nil)
}

func (r *fakeProfiles) ListActive(ctx context.Context, accountID uuid.UUID) ([]*model.MemberProfile, error) {
	r.lists++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.roster, nil
}

func (r *fakeProfiles) Update(ctx context.Context, p *model.MemberProfile) error { return nil }
func (r *fakeProfiles) Deactivate(ctx context.Context, id uuid.UUID) error       { return nil }
func (r *fakeProfiles) Delete(ctx context.Context, id uuid.UUID) error           { return nil }

func makeProfile(firstName string) *model.MemberProfile {
	return &model.MemberProfile{
		Base:      model.Base{ID: uuid.New()},
		AccountID: uuid.New(),
		RoleType:  model.RolePharmacist,
		FirstName: firstName,
		LastName:  "Member",
		IsActive:  true,
	}
}

func newTestCache() *gocache.Cache {
	return gocache.New(time.Hour, time.Hour)
}

func TestLoadProfilesAndSetDefaultSelectsFirst(t *testing.T) {
	first := makeProfile("Alice")
	second := makeProfile("Bob")
	repo := &fakeProfiles{roster: []*model.MemberProfile{first, second}}

	s := NewStore(repo, newTestCache(), nil, logger.Nop())
	require.NoError(t, s.LoadProfilesAndSetDefault(context.Background(), uuid.New()))

	require.NotNil(t, s.CurrentProfile())
	assert.Equal(t, first.ID, s.CurrentProfile().ID)
	assert.Len(t, s.Profiles(), 2)
}

func TestLoadProfilesKeepsValidSelection(t *testing.T) {
	first := makeProfile("Alice")
	second := makeProfile("Bob")
	repo := &fakeProfiles{roster: []*model.MemberProfile{first, second}}

	s := NewStore(repo, newTestCache(), nil, logger.Nop())
	s.SetCurrentProfile(second)

	require.NoError(t, s.LoadProfilesAndSetDefault(context.Background(), uuid.New()))
	assert.Equal(t, second.ID, s.CurrentProfile().ID)
}

func TestLoadProfilesReplacesDanglingSelection(t *testing.T) {
	first := makeProfile("Alice")
	repo := &fakeProfiles{roster: []*model.MemberProfile{first}}

	s := NewStore(repo, newTestCache(), nil, logger.Nop())
	s.SetCurrentProfile(makeProfile("Ghost"))

	require.NoError(t, s.LoadProfilesAndSetDefault(context.Background(), uuid.New()))
	assert.Equal(t, first.ID, s.CurrentProfile().ID)
}

func TestLoadProfilesEmptyRosterClearsSelection(t *testing.T) {
	repo := &fakeProfiles{}

	s := NewStore(repo, newTestCache(), nil, logger.Nop())
	s.SetCurrentProfile(makeProfile("Ghost"))

	require.NoError(t, s.LoadProfilesAndSetDefault(context.Background(), uuid.New()))
	assert.Nil(t, s.CurrentProfile())
	assert.Empty(t, s.Profiles())
}

func TestSelectionSurvivesRestartViaCache(t *testing.T) {
	cache := newTestCache()
	selected := makeProfile("Alice")

	s := NewStore(&fakeProfiles{}, cache, nil, logger.Nop())
	s.SetCurrentProfile(selected)

	// A second store over the same cache restores the selection
	// without any repository call.
	repo := &fakeProfiles{}
	restored := NewStore(repo, cache, nil, logger.Nop())

	require.NotNil(t, restored.CurrentProfile())
	assert.Equal(t, selected.ID, restored.CurrentProfile().ID)
	assert.Zero(t, repo.gets)
	assert.Zero(t, repo.lists)
}

func TestRefreshCurrentProfileNoSelection(t *testing.T) {
	repo := &fakeProfiles{}
	s := NewStore(repo, newTestCache(), nil, logger.Nop())

	require.NoError(t, s.RefreshCurrentProfile(context.Background()))
	assert.Zero(t, repo.gets)
}

func TestRefreshCurrentProfileDeletedClearsSelection(t *testing.T) {
	s := NewStore(&fakeProfiles{}, newTestCache(), nil, logger.Nop())
	s.SetCurrentProfile(makeProfile("Gone"))

	require.NoError(t, s.RefreshCurrentProfile(context.Background()))
	assert.Nil(t, s.CurrentProfile())
}

func TestRefreshCurrentProfilePicksUpEdit(t *testing.T) {
	p := makeProfile("Alice")
	repo := &fakeProfiles{roster: []*model.MemberProfile{p}}

	s := NewStore(repo, newTestCache(), nil, logger.Nop())
	require.NoError(t, s.LoadProfilesAndSetDefault(context.Background(), p.AccountID))

	p.FirstName = "Alicia"
	require.NoError(t, s.RefreshCurrentProfile(context.Background()))
	assert.Equal(t, "Alicia", s.CurrentProfile().FirstName)
}

func TestSessionEventsDriveStore(t *testing.T) {
	p := makeProfile("Alice")
	repo := &fakeProfiles{roster: []*model.MemberProfile{p}}
	bus := event.NewBus()

	s := NewStore(repo, newTestCache(), bus, logger.Nop())

	bus.Publish(context.Background(), event.TopicAccountResolved, &model.Account{ID: p.AccountID})
	require.NotNil(t, s.CurrentProfile())
	assert.Equal(t, p.ID, s.CurrentProfile().ID)

	bus.Publish(context.Background(), event.TopicSessionCleared, nil)
	assert.Nil(t, s.CurrentProfile())
	assert.Empty(t, s.Profiles())
}
