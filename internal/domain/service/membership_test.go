package service

import (
	"context"
	"testing"

	"github.com/campuslink/club-governance/internal/domain/common/errorz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMembershipService(cache *fakeMembersCache) (*MembershipService, *fakeMembershipStorage) {
	storage := &fakeMembershipStorage{}
	var c membersCache
	if cache != nil {
		c = cache
	}
	return NewMembershipService(testLogger(), storage, c, 0), storage
}

func TestMembershipJoinAndLeave(t *testing.T) {
	ctx := context.Background()
	svc, storage := newMembershipService(nil)

	episode, err := svc.Join(ctx, "club-1", 10)
	require.NoError(t, err)
	assert.NotEmpty(t, episode.ID)
	assert.Nil(t, episode.LeftAt)

	active, err := svc.IsActiveMember(ctx, "club-1", 10)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, svc.Leave(ctx, "club-1", 10))

	active, err = svc.IsActiveMember(ctx, "club-1", 10)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Len(t, storage.episodes, 1)
}

func TestMembershipDoubleJoinFails(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMembershipService(nil)

	_, err := svc.Join(ctx, "club-1", 10)
	require.NoError(t, err)

	_, err = svc.Join(ctx, "club-1", 10)
	assert.ErrorIs(t, err, errorz.ErrAlreadyMember)
}

func TestMembershipRejoinOpensNewEpisode(t *testing.T) {
	ctx := context.Background()
	svc, storage := newMembershipService(nil)

	first, err := svc.Join(ctx, "club-1", 10)
	require.NoError(t, err)
	require.NoError(t, svc.Leave(ctx, "club-1", 10))

	second, err := svc.Join(ctx, "club-1", 10)
	require.NoError(t, err)

	// History is preserved: two episodes, and the new join date is
	// strictly later than the previous leave date.
	assert.Len(t, storage.episodes, 2)
	assert.NotEqual(t, first.ID, second.ID)
	require.NotNil(t, first.LeftAt)
	assert.True(t, second.JoinedAt.After(*first.LeftAt))

	active, err := svc.IsActiveMember(ctx, "club-1", 10)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestMembershipLeaveWithoutJoining(t *testing.T) {
	svc, _ := newMembershipService(nil)

	err := svc.Leave(context.Background(), "club-1", 10)
	assert.ErrorIs(t, err, errorz.ErrNotAMember)
}

func TestMembershipGetCurrentWithoutEpisode(t *testing.T) {
	svc, _ := newMembershipService(nil)

	_, err := svc.GetCurrent(context.Background(), "club-1", 10)
	assert.ErrorIs(t, err, errorz.ErrNotAMember)
}

func TestMembershipLeaveDoesNotTouchOtherPairs(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMembershipService(nil)

	_, err := svc.Join(ctx, "club-1", 10)
	require.NoError(t, err)
	_, err = svc.Join(ctx, "club-1", 11)
	require.NoError(t, err)
	_, err = svc.Join(ctx, "club-2", 10)
	require.NoError(t, err)

	require.NoError(t, svc.Leave(ctx, "club-1", 10))

	active, err := svc.IsActiveMember(ctx, "club-1", 11)
	require.NoError(t, err)
	assert.True(t, active)

	active, err = svc.IsActiveMember(ctx, "club-2", 10)
	require.NoError(t, err)
	assert.True(t, active)

	count, err := svc.CountActiveMembers(ctx, "club-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestMembershipCacheReadThrough(t *testing.T) {
	ctx := context.Background()
	cache := newFakeMembersCache()
	svc, _ := newMembershipService(cache)

	// Miss populates the cache.
	active, err := svc.IsActiveMember(ctx, "club-1", 10)
	require.NoError(t, err)
	assert.False(t, active)
	assert.Equal(t, 1, cache.sets)

	// Join refreshes the entry, leave drops it.
	_, err = svc.Join(ctx, "club-1", 10)
	require.NoError(t, err)

	active, err = svc.IsActiveMember(ctx, "club-1", 10)
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, svc.Leave(ctx, "club-1", 10))
	assert.Equal(t, 1, cache.clears)

	active, err = svc.IsActiveMember(ctx, "club-1", 10)
	require.NoError(t, err)
	assert.False(t, active)
}

func TestMembershipHistoryIncludesClosedEpisodes(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMembershipService(nil)

	_, err := svc.Join(ctx, "club-1", 10)
	require.NoError(t, err)
	require.NoError(t, svc.Leave(ctx, "club-1", 10))
	_, err = svc.Join(ctx, "club-1", 10)
	require.NoError(t, err)

	history, err := svc.GetHistory(ctx, "club-1")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	members, err := svc.GetActiveMembers(ctx, "club-1")
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
