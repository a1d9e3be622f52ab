package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/campuslink/club-governance/internal/domain/common/errorz"
	"github.com/campuslink/club-governance/internal/domain/dto"
	"github.com/campuslink/club-governance/internal/domain/entity"
	"github.com/campuslink/club-governance/pkg/logger/types"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// --- membership ---

type fakeMembershipStorage struct {
	episodes []*entity.MembershipEpisode
}

func (f *fakeMembershipStorage) open(clubID string, userID int64) *entity.MembershipEpisode {
	for _, e := range f.episodes {
		if e.ClubID == clubID && e.UserID == userID && e.LeftAt == nil {
			return e
		}
	}
	return nil
}

func (f *fakeMembershipStorage) Create(_ context.Context, episode *entity.MembershipEpisode) (*entity.MembershipEpisode, error) {
	if f.open(episode.ClubID, episode.UserID) != nil {
		return nil, errorz.ErrAlreadyMember
	}
	f.episodes = append(f.episodes, episode)
	return episode, nil
}

func (f *fakeMembershipStorage) GetCurrent(_ context.Context, clubID string, userID int64) (*entity.MembershipEpisode, error) {
	if e := f.open(clubID, userID); e != nil {
		return e, nil
	}
	return nil, errorz.ErrNotAMember
}

func (f *fakeMembershipStorage) CloseCurrent(_ context.Context, clubID string, userID int64, leftAt time.Time) error {
	e := f.open(clubID, userID)
	if e == nil {
		return errorz.ErrNotAMember
	}
	e.LeftAt = &leftAt
	return nil
}

func (f *fakeMembershipStorage) GetActiveByClubID(_ context.Context, clubID string) ([]dto.ClubMember, error) {
	var result []dto.ClubMember
	for _, e := range f.episodes {
		if e.ClubID == clubID && e.LeftAt == nil {
			result = append(result, dto.ClubMember{ClubID: e.ClubID, UserID: e.UserID, JoinedAt: e.JoinedAt})
		}
	}
	return result, nil
}

func (f *fakeMembershipStorage) GetHistoryByClubID(_ context.Context, clubID string) ([]entity.MembershipEpisode, error) {
	var result []entity.MembershipEpisode
	for _, e := range f.episodes {
		if e.ClubID == clubID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (f *fakeMembershipStorage) GetByUserID(_ context.Context, userID int64) ([]entity.MembershipEpisode, error) {
	var result []entity.MembershipEpisode
	for _, e := range f.episodes {
		if e.UserID == userID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (f *fakeMembershipStorage) CountActiveByClubID(_ context.Context, clubID string) (int64, error) {
	var count int64
	for _, e := range f.episodes {
		if e.ClubID == clubID && e.LeftAt == nil {
			count++
		}
	}
	return count, nil
}

type fakeMembersCache struct {
	entries map[string]bool
	sets    int
	clears  int
}

func newFakeMembersCache() *fakeMembersCache {
	return &fakeMembersCache{entries: make(map[string]bool)}
}

func cacheKey(clubID string, userID int64) string {
	return fmt.Sprintf("%s:%d", clubID, userID)
}

func (f *fakeMembersCache) Get(_ context.Context, clubID string, userID int64) (bool, error) {
	active, ok := f.entries[cacheKey(clubID, userID)]
	if !ok {
		return false, redis.Nil
	}
	return active, nil
}

func (f *fakeMembersCache) Set(_ context.Context, clubID string, userID int64, active bool, _ time.Duration) {
	f.entries[cacheKey(clubID, userID)] = active
	f.sets++
}

func (f *fakeMembersCache) Clear(_ context.Context, clubID string, userID int64) {
	delete(f.entries, cacheKey(clubID, userID))
	f.clears++
}

// --- executive ---

type fakeExecutiveStorage struct {
	tenures []*entity.ExecutiveTenure
}

func (f *fakeExecutiveStorage) open(clubID string, userID int64) *entity.ExecutiveTenure {
	for _, t := range f.tenures {
		if t.ClubID == clubID && t.UserID == userID && t.LeftAt == nil {
			return t
		}
	}
	return nil
}

func (f *fakeExecutiveStorage) Create(_ context.Context, tenure *entity.ExecutiveTenure) (*entity.ExecutiveTenure, error) {
	if f.open(tenure.ClubID, tenure.UserID) != nil {
		return nil, errorz.ErrAlreadyExecutive
	}
	f.tenures = append(f.tenures, tenure)
	return tenure, nil
}

func (f *fakeExecutiveStorage) GetCurrent(_ context.Context, clubID string, userID int64) (*entity.ExecutiveTenure, error) {
	if t := f.open(clubID, userID); t != nil {
		return t, nil
	}
	return nil, errorz.ErrNotAnExecutive
}

func (f *fakeExecutiveStorage) CloseCurrent(_ context.Context, clubID string, userID int64, leftAt time.Time) error {
	t := f.open(clubID, userID)
	if t == nil {
		return errorz.ErrNotAnExecutive
	}
	t.LeftAt = &leftAt
	return nil
}

func (f *fakeExecutiveStorage) UpdatePosition(_ context.Context, clubID string, userID int64, position string) error {
	t := f.open(clubID, userID)
	if t == nil {
		return errorz.ErrNotAnExecutive
	}
	t.Position = position
	return nil
}

func (f *fakeExecutiveStorage) CountByPair(_ context.Context, clubID string, userID int64) (int64, error) {
	var count int64
	for _, t := range f.tenures {
		if t.ClubID == clubID && t.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeExecutiveStorage) GetActiveByClubID(_ context.Context, clubID string) ([]dto.ClubExecutive, error) {
	var result []dto.ClubExecutive
	for _, t := range f.tenures {
		if t.ClubID == clubID && t.LeftAt == nil {
			result = append(result, dto.ClubExecutive{ClubID: t.ClubID, UserID: t.UserID, Position: t.Position, JoinedAt: t.JoinedAt})
		}
	}
	return result, nil
}

func (f *fakeExecutiveStorage) GetHistoryByClubID(_ context.Context, clubID string) ([]entity.ExecutiveTenure, error) {
	var result []entity.ExecutiveTenure
	for _, t := range f.tenures {
		if t.ClubID == clubID {
			result = append(result, *t)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].JoinedAt.Before(result[j].JoinedAt) })
	return result, nil
}

// --- membership requests ---

// fakeMembershipRequestStorage mimics the transactional coupling of the
// postgres adapter: approval writes the episode and the status change
// together, and an episode conflict leaves the request untouched.
type fakeMembershipRequestStorage struct {
	requests    []*entity.MembershipRequest
	memberships *fakeMembershipStorage
	nextID      uint
}

func newFakeRequestStorage(memberships *fakeMembershipStorage) *fakeMembershipRequestStorage {
	return &fakeMembershipRequestStorage{memberships: memberships}
}

func (f *fakeMembershipRequestStorage) find(id uint) *entity.MembershipRequest {
	for _, r := range f.requests {
		if r.ID == id {
			return r
		}
	}
	return nil
}

func (f *fakeMembershipRequestStorage) Create(_ context.Context, request *entity.MembershipRequest) (*entity.MembershipRequest, error) {
	for _, r := range f.requests {
		if r.ClubID == request.ClubID && r.UserID == request.UserID && r.Status == entity.RequestStatusPending {
			return nil, errorz.ErrDuplicateRequest
		}
	}
	f.nextID++
	request.ID = f.nextID
	request.Status = entity.RequestStatusPending
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}
	f.requests = append(f.requests, request)
	return request, nil
}

func (f *fakeMembershipRequestStorage) Get(_ context.Context, id uint) (*entity.MembershipRequest, error) {
	if r := f.find(id); r != nil {
		return r, nil
	}
	return nil, errorz.ErrNotFound
}

func (f *fakeMembershipRequestStorage) Approve(_ context.Context, id uint, processorID int64, response string, episodeID string, now time.Time) (*entity.MembershipRequest, error) {
	r := f.find(id)
	if r == nil {
		return nil, errorz.ErrNotFound
	}
	if r.Status != entity.RequestStatusPending {
		return nil, errorz.ErrInvalidTransition
	}
	if f.memberships.open(r.ClubID, r.UserID) != nil {
		return nil, errorz.ErrAlreadyMember
	}
	f.memberships.episodes = append(f.memberships.episodes, &entity.MembershipEpisode{
		ID:       episodeID,
		ClubID:   r.ClubID,
		UserID:   r.UserID,
		JoinedAt: now,
	})
	r.Status = entity.RequestStatusApproved
	r.ResponseMessage = response
	r.ProcessedAt = &now
	r.ProcessedBy = &processorID
	return r, nil
}

func (f *fakeMembershipRequestStorage) Reject(_ context.Context, id uint, processorID int64, response string, now time.Time) (*entity.MembershipRequest, error) {
	r := f.find(id)
	if r == nil {
		return nil, errorz.ErrNotFound
	}
	if r.Status != entity.RequestStatusPending {
		return nil, errorz.ErrInvalidTransition
	}
	r.Status = entity.RequestStatusRejected
	r.ResponseMessage = response
	r.ProcessedAt = &now
	r.ProcessedBy = &processorID
	return r, nil
}

func (f *fakeMembershipRequestStorage) DeletePending(_ context.Context, id uint) error {
	for i, r := range f.requests {
		if r.ID == id && r.Status == entity.RequestStatusPending {
			f.requests = append(f.requests[:i], f.requests[i+1:]...)
			return nil
		}
	}
	return errorz.ErrInvalidTransition
}

func (f *fakeMembershipRequestStorage) GetPendingByClubID(_ context.Context, clubID string) ([]entity.MembershipRequest, error) {
	var result []entity.MembershipRequest
	for _, r := range f.requests {
		if r.ClubID == clubID && r.Status == entity.RequestStatusPending {
			result = append(result, *r)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

func (f *fakeMembershipRequestStorage) GetByClubID(_ context.Context, clubID string) ([]entity.MembershipRequest, error) {
	var result []entity.MembershipRequest
	for _, r := range f.requests {
		if r.ClubID == clubID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeMembershipRequestStorage) GetByUserID(_ context.Context, userID int64) ([]entity.MembershipRequest, error) {
	var result []entity.MembershipRequest
	for _, r := range f.requests {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeMembershipRequestStorage) GetPendingByUserID(_ context.Context, userID int64) ([]entity.MembershipRequest, error) {
	var result []entity.MembershipRequest
	for _, r := range f.requests {
		if r.UserID == userID && r.Status == entity.RequestStatusPending {
			result = append(result, *r)
		}
	}
	return result, nil
}

// --- clubs ---

type fakeClubStorage struct {
	clubs map[string]*entity.Club
}

func newFakeClubStorage() *fakeClubStorage {
	return &fakeClubStorage{clubs: make(map[string]*entity.Club)}
}

func (f *fakeClubStorage) Create(_ context.Context, club *entity.Club) (*entity.Club, error) {
	for _, c := range f.clubs {
		if c.Name == club.Name {
			return nil, errorz.ErrClubNameTaken
		}
	}
	if club.ID == "" {
		club.ID = uuid.NewString()
	}
	f.clubs[club.ID] = club
	return club, nil
}

func (f *fakeClubStorage) Get(_ context.Context, id string) (*entity.Club, error) {
	if c, ok := f.clubs[id]; ok {
		return c, nil
	}
	return nil, errorz.ErrNotFound
}

func (f *fakeClubStorage) GetByName(_ context.Context, name string) (*entity.Club, error) {
	for _, c := range f.clubs {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, errorz.ErrNotFound
}

func (f *fakeClubStorage) Update(_ context.Context, club *entity.Club) (*entity.Club, error) {
	f.clubs[club.ID] = club
	return club, nil
}

func (f *fakeClubStorage) SetHead(_ context.Context, id string, headID int64) error {
	c, ok := f.clubs[id]
	if !ok {
		return errorz.ErrNotFound
	}
	c.HeadID = headID
	return nil
}

func (f *fakeClubStorage) Count(_ context.Context) (int64, error) {
	return int64(len(f.clubs)), nil
}

func (f *fakeClubStorage) GetWithPagination(_ context.Context, _, _ int, _ string) ([]entity.Club, error) {
	var result []entity.Club
	for _, c := range f.clubs {
		result = append(result, *c)
	}
	return result, nil
}

// --- users ---

type fakeUserStorage struct {
	users map[int64]*entity.User
}

func newFakeUserStorage() *fakeUserStorage {
	return &fakeUserStorage{users: make(map[int64]*entity.User)}
}

func (f *fakeUserStorage) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStorage) Get(_ context.Context, id int64) (*entity.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, errorz.ErrNotFound
}

func (f *fakeUserStorage) GetAll(_ context.Context) ([]entity.User, error) {
	var result []entity.User
	for _, u := range f.users {
		result = append(result, *u)
	}
	return result, nil
}

func (f *fakeUserStorage) Update(_ context.Context, user *entity.User) (*entity.User, error) {
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStorage) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func (f *fakeUserStorage) GetWithPagination(_ context.Context, _, _ int, _ string) ([]entity.User, error) {
	return f.GetAll(context.Background())
}
