package bookmark

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rxhub/member-portal-api/internal/model"
	apperrors "github.com/rxhub/member-portal-api/pkg/errors"
	"github.com/rxhub/member-portal-api/pkg/event"
)

type fakeBookmarks struct {
	ids       []uuid.UUID
	insertErr error
	deleteErr error
	inserts   int
	deletes   int
}

func (r *fakeBookmarks) ListResourceIDs(ctx context.Context, profileID uuid.UUID) ([]uuid.UUID, error) {
	return r.ids, nil
}

func (r *fakeBookmarks) ListResources(ctx context.Context, profileID uuid.UUID) ([]model.BookmarkedResource, error) {
	return nil, nil
}

func (r *fakeBookmarks) Insert(ctx context.Context, profileID, resourceID uuid.UUID) error {
	r.inserts++
	return r.insertErr
}

func (r *fakeBookmarks) Delete(ctx context.Context, profileID, resourceID uuid.UUID) error {
	r.deletes++
	return r.deleteErr
}

func (r *fakeBookmarks) Exists(ctx context.Context, profileID, resourceID uuid.UUID) (bool, error) {
	for _, id := range r.ids {
		if id == resourceID {
			return true, nil
		}
	}
	return false, nil
}

func TestLoadBookmarksReplacesSet(t *testing.T) {
	kept := uuid.New()
	dropped := uuid.New()
	repo := &fakeBookmarks{ids: []uuid.UUID{kept}}

	s := NewStore(repo, nil)
	require.NoError(t, s.LoadBookmarks(context.Background(), uuid.New()))
	assert.True(t, s.IsBookmarked(kept))
	assert.False(t, s.IsBookmarked(dropped))

	// A reload for another profile replaces the set wholesale.
	repo.ids = []uuid.UUID{dropped}
	require.NoError(t, s.LoadBookmarks(context.Background(), uuid.New()))
	assert.False(t, s.IsBookmarked(kept))
	assert.True(t, s.IsBookmarked(dropped))
}

func TestToggleBookmarkAddsAndRemoves(t *testing.T) {
	resourceID := uuid.New()
	repo := &fakeBookmarks{}
	s := NewStore(repo, nil)

	bookmarked, err := s.ToggleBookmark(context.Background(), uuid.New(), resourceID)
	require.NoError(t, err)
	assert.True(t, bookmarked)
	assert.True(t, s.IsBookmarked(resourceID))
	assert.Equal(t, 1, repo.inserts)

	bookmarked, err = s.ToggleBookmark(context.Background(), uuid.New(), resourceID)
	require.NoError(t, err)
	assert.False(t, bookmarked)
	assert.False(t, s.IsBookmarked(resourceID))
	assert.Equal(t, 1, repo.deletes)
}

func TestToggleBookmarkFailedInsertLeavesSetUnchanged(t *testing.T) {
	resourceID := uuid.New()
	repo := &fakeBookmarks{insertErr: errors.New("db down")}
	s := NewStore(repo, nil)

	_, err := s.ToggleBookmark(context.Background(), uuid.New(), resourceID)
	require.Error(t, err)
	assert.False(t, s.IsBookmarked(resourceID), "failed write must not flip membership")
}

func TestToggleBookmarkFailedDeleteLeavesSetUnchanged(t *testing.T) {
	resourceID := uuid.New()
	repo := &fakeBookmarks{ids: []uuid.UUID{resourceID}, deleteErr: errors.New("db down")}
	s := NewStore(repo, nil)
	require.NoError(t, s.LoadBookmarks(context.Background(), uuid.New()))

	_, err := s.ToggleBookmark(context.Background(), uuid.New(), resourceID)
	require.Error(t, err)
	assert.True(t, s.IsBookmarked(resourceID), "failed delete must not flip membership")
}

func TestToggleBookmarkMissingRemoteRowStillRemoves(t *testing.T) {
	resourceID := uuid.New()
	repo := &fakeBookmarks{ids: []uuid.UUID{resourceID}, deleteErr: apperrors.NotFound("bookmark", nil)}
	s := NewStore(repo, nil)
	require.NoError(t, s.LoadBookmarks(context.Background(), uuid.New()))

	bookmarked, err := s.ToggleBookmark(context.Background(), uuid.New(), resourceID)
	require.NoError(t, err)
	assert.False(t, bookmarked)
	assert.False(t, s.IsBookmarked(resourceID))
}

func TestSessionClearedEmptiesSet(t *testing.T) {
	resourceID := uuid.New()
	repo := &fakeBookmarks{ids: []uuid.UUID{resourceID}}
	bus := event.NewBus()

	s := NewStore(repo, bus)
	require.NoError(t, s.LoadBookmarks(context.Background(), uuid.New()))
	require.True(t, s.IsBookmarked(resourceID))

	bus.Publish(context.Background(), event.TopicSessionCleared, nil)
	assert.False(t, s.IsBookmarked(resourceID))
}
