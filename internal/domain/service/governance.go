package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/campuslink/club-governance/internal/domain/common/errorz"
	"github.com/campuslink/club-governance/internal/domain/dto"
	"github.com/campuslink/club-governance/internal/domain/entity"
	fieldvalidator "github.com/campuslink/club-governance/internal/domain/utils/validator"
	"github.com/campuslink/club-governance/pkg/logger/types"
	"github.com/go-playground/validator/v10"
)

// GovernanceService is the operation surface the collaborators call. It
// owns the capability gates and cross-entity invariants; the ledgers and
// the request workflow below it stay single-entity.
type GovernanceService struct {
	logger   *types.Logger
	validate *validator.Validate

	users       *UserService
	clubs       *ClubService
	memberships *MembershipService
	executives  *ExecutiveService
	requests    *MembershipRequestService
}

func NewGovernanceService(
	logger *types.Logger,
	users *UserService,
	clubs *ClubService,
	memberships *MembershipService,
	executives *ExecutiveService,
	requests *MembershipRequestService,
) *GovernanceService {
	return &GovernanceService{
		logger:   logger,
		validate: validator.New(),

		users:       users,
		clubs:       clubs,
		memberships: memberships,
		executives:  executives,
		requests:    requests,
	}
}

// getGovernableClub resolves a club that membership operations may touch:
// it must exist, be approved and not deactivated.
func (s *GovernanceService) getGovernableClub(ctx context.Context, clubID string) (*entity.Club, error) {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !club.Approved {
		return nil, fmt.Errorf("club %s is not approved: %w", clubID, errorz.ErrForbidden)
	}
	if !club.Active {
		return nil, fmt.Errorf("club %s is deactivated: %w", clubID, errorz.ErrForbidden)
	}
	return club, nil
}

// requireProcessor gates the actions reserved for platform admins, the
// club head and the club's active executives.
func (s *GovernanceService) requireProcessor(ctx context.Context, actor dto.Actor, club *entity.Club) error {
	if actor.IsAdmin() || club.HeadID == actor.ID {
		return nil
	}
	active, err := s.executives.IsActiveExecutive(ctx, club.ID, actor.ID)
	if err != nil {
		return err
	}
	if !active {
		return errorz.ErrForbidden
	}
	return nil
}

// --- Club registry ---

// RegisterClub creates a club. Admin-created clubs come up approved;
// everyone else's wait for platform approval.
func (s *GovernanceService) RegisterClub(ctx context.Context, actor dto.Actor, input dto.CreateClub) (*entity.Club, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	if !fieldvalidator.ClubName(input.Name) {
		return nil, fmt.Errorf("club name must be between 3 and 30 characters")
	}
	if !fieldvalidator.ClubDescription(input.Description) {
		return nil, fmt.Errorf("club description must not exceed 400 characters")
	}
	if _, err := s.users.Get(ctx, input.HeadID); err != nil {
		return nil, err
	}

	club, err := s.clubs.Create(ctx, input, actor.IsAdmin())
	if err != nil {
		return nil, err
	}

	s.logger.Infof("club %q registered by %d (approved: %t)", club.Name, actor.ID, club.Approved)
	return club, nil
}

func (s *GovernanceService) ApproveClub(ctx context.Context, actor dto.Actor, clubID string) (*entity.Club, error) {
	if !actor.IsAdmin() {
		return nil, errorz.ErrForbidden
	}
	return s.clubs.Approve(ctx, clubID)
}

func (s *GovernanceService) DeactivateClub(ctx context.Context, actor dto.Actor, clubID string) (*entity.Club, error) {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && club.HeadID != actor.ID {
		return nil, errorz.ErrForbidden
	}
	return s.clubs.Deactivate(ctx, clubID)
}

func (s *GovernanceService) ReactivateClub(ctx context.Context, actor dto.Actor, clubID string) (*entity.Club, error) {
	if !actor.IsAdmin() {
		return nil, errorz.ErrForbidden
	}
	return s.clubs.Reactivate(ctx, clubID)
}

func (s *GovernanceService) UpdateClub(ctx context.Context, actor dto.Actor, clubID string, input dto.UpdateClub) (*entity.Club, error) {
	if input.Description != nil && !fieldvalidator.ClubDescription(*input.Description) {
		return nil, fmt.Errorf("club description must not exceed 400 characters")
	}
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && club.HeadID != actor.ID {
		return nil, errorz.ErrForbidden
	}
	return s.clubs.Update(ctx, clubID, input)
}

func (s *GovernanceService) GetClub(ctx context.Context, clubID string) (*entity.Club, error) {
	return s.clubs.Get(ctx, clubID)
}

func (s *GovernanceService) GetClubs(ctx context.Context, offset, limit int, order string) ([]entity.Club, error) {
	return s.clubs.GetWithPagination(ctx, offset, limit, order)
}

// TransferHead hands the club to a new head. The incoming head must
// resolve to a user and hold an open membership episode; the outgoing
// head keeps every record they had (no auto-demotion, no auto-tenure).
func (s *GovernanceService) TransferHead(ctx context.Context, actor dto.Actor, clubID string, newHeadID int64) error {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return err
	}
	if !actor.IsAdmin() && club.HeadID != actor.ID {
		return errorz.ErrForbidden
	}
	if _, err = s.users.Get(ctx, newHeadID); err != nil {
		return err
	}

	current, err := s.membershipSnapshot(ctx, clubID, newHeadID)
	if err != nil {
		return err
	}
	if err = headRequiresMembership(current); err != nil {
		return err
	}

	if err = s.clubs.SetHead(ctx, clubID, newHeadID); err != nil {
		return err
	}

	s.logger.Infof("club %s head transferred from %d to %d by %d", clubID, club.HeadID, newHeadID, actor.ID)
	return nil
}

// --- Membership ledger ---

func (s *GovernanceService) AddMember(ctx context.Context, actor dto.Actor, clubID string, userID int64) (*entity.MembershipEpisode, error) {
	club, err := s.getGovernableClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err = s.requireProcessor(ctx, actor, club); err != nil {
		return nil, err
	}
	if _, err = s.users.Get(ctx, userID); err != nil {
		return nil, err
	}
	return s.memberships.Join(ctx, clubID, userID)
}

func (s *GovernanceService) RemoveMember(ctx context.Context, actor dto.Actor, clubID string, userID int64) error {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return err
	}
	// Leaving on your own needs no capability; removing someone else does.
	if actor.ID != userID {
		if err = s.requireProcessor(ctx, actor, club); err != nil {
			return err
		}
	}
	return s.memberships.Leave(ctx, clubID, userID)
}

func (s *GovernanceService) IsActiveMember(ctx context.Context, clubID string, userID int64) (bool, error) {
	return s.memberships.IsActiveMember(ctx, clubID, userID)
}

func (s *GovernanceService) GetActiveMembers(ctx context.Context, clubID string) ([]dto.ClubMember, error) {
	return s.memberships.GetActiveMembers(ctx, clubID)
}

func (s *GovernanceService) GetMembershipHistory(ctx context.Context, clubID string) ([]entity.MembershipEpisode, error) {
	return s.memberships.GetHistory(ctx, clubID)
}

// --- Executive ledger ---

func (s *GovernanceService) PromoteExecutive(ctx context.Context, actor dto.Actor, clubID string, userID int64, position string) (*entity.ExecutiveTenure, error) {
	club, err := s.getGovernableClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err = s.requireProcessor(ctx, actor, club); err != nil {
		return nil, err
	}

	current, err := s.membershipSnapshot(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if err = executiveRequiresMembership(current); err != nil {
		return nil, err
	}

	return s.executives.Promote(ctx, clubID, userID, position)
}

func (s *GovernanceService) UpdateExecutivePosition(ctx context.Context, actor dto.Actor, clubID string, userID int64, position string) error {
	club, err := s.getGovernableClub(ctx, clubID)
	if err != nil {
		return err
	}
	if err = s.requireProcessor(ctx, actor, club); err != nil {
		return err
	}
	return s.executives.UpdatePosition(ctx, clubID, userID, position)
}

func (s *GovernanceService) DemoteExecutive(ctx context.Context, actor dto.Actor, clubID string, userID int64) error {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return err
	}
	if err = s.requireProcessor(ctx, actor, club); err != nil {
		return err
	}
	return s.executives.Demote(ctx, clubID, userID)
}

func (s *GovernanceService) ReactivateExecutive(ctx context.Context, actor dto.Actor, clubID string, userID int64, position string) (*entity.ExecutiveTenure, error) {
	club, err := s.getGovernableClub(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err = s.requireProcessor(ctx, actor, club); err != nil {
		return nil, err
	}

	current, err := s.membershipSnapshot(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if err = executiveRequiresMembership(current); err != nil {
		return nil, err
	}

	return s.executives.Reactivate(ctx, clubID, userID, position)
}

func (s *GovernanceService) GetActiveExecutives(ctx context.Context, clubID string) ([]dto.ClubExecutive, error) {
	return s.executives.GetActiveExecutives(ctx, clubID)
}

func (s *GovernanceService) GetExecutiveHistory(ctx context.Context, clubID string) ([]entity.ExecutiveTenure, error) {
	return s.executives.GetHistory(ctx, clubID)
}

// --- Request workflow ---

// RequestToJoin files a membership request on behalf of the actor.
// Existing members may still file one (duplicate pending requests are
// blocked, an open episode is not); the approval will fail instead.
func (s *GovernanceService) RequestToJoin(ctx context.Context, actor dto.Actor, input dto.JoinRequest) (*entity.MembershipRequest, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, err
	}
	if !fieldvalidator.RequestMessage(input.Message) {
		return nil, fmt.Errorf("request message must not exceed 400 characters")
	}

	club, err := s.getGovernableClub(ctx, input.ClubID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		return nil, errorz.ErrForbidden
	}
	if !club.AllowsRole(user.Role) {
		return nil, fmt.Errorf("club %s does not accept role %s: %w", club.ID, user.Role, errorz.ErrForbidden)
	}

	return s.requests.Create(ctx, input.ClubID, actor.ID, input.Message)
}

func (s *GovernanceService) ApproveRequest(ctx context.Context, actor dto.Actor, requestID uint, response string) (*entity.MembershipRequest, error) {
	if !fieldvalidator.ResponseMessage(response) {
		return nil, fmt.Errorf("response message must not exceed 400 characters")
	}
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	club, err := s.getGovernableClub(ctx, request.ClubID)
	if err != nil {
		return nil, err
	}
	if err = s.requireProcessor(ctx, actor, club); err != nil {
		return nil, err
	}

	request, err = s.requests.Approve(ctx, requestID, actor.ID, response)
	if err != nil {
		return nil, err
	}

	// The episode was written inside the approval transaction, behind the
	// membership service's back.
	s.memberships.DropCached(ctx, request.ClubID, request.UserID)
	return request, nil
}

func (s *GovernanceService) RejectRequest(ctx context.Context, actor dto.Actor, requestID uint, response string) (*entity.MembershipRequest, error) {
	if !fieldvalidator.ResponseMessage(response) {
		return nil, fmt.Errorf("response message must not exceed 400 characters")
	}
	request, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	club, err := s.clubs.Get(ctx, request.ClubID)
	if err != nil {
		return nil, err
	}
	if err = s.requireProcessor(ctx, actor, club); err != nil {
		return nil, err
	}
	return s.requests.Reject(ctx, requestID, actor.ID, response)
}

func (s *GovernanceService) CancelRequest(ctx context.Context, actor dto.Actor, requestID uint) error {
	return s.requests.Cancel(ctx, requestID, actor.ID)
}

func (s *GovernanceService) GetRequest(ctx context.Context, requestID uint) (*entity.MembershipRequest, error) {
	return s.requests.Get(ctx, requestID)
}

func (s *GovernanceService) GetPendingRequests(ctx context.Context, actor dto.Actor, clubID string) ([]entity.MembershipRequest, error) {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err = s.requireProcessor(ctx, actor, club); err != nil {
		return nil, err
	}
	return s.requests.GetPendingByClubID(ctx, clubID)
}

func (s *GovernanceService) GetClubRequests(ctx context.Context, actor dto.Actor, clubID string) ([]entity.MembershipRequest, error) {
	club, err := s.clubs.Get(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if err = s.requireProcessor(ctx, actor, club); err != nil {
		return nil, err
	}
	return s.requests.GetByClubID(ctx, clubID)
}

func (s *GovernanceService) GetUserRequests(ctx context.Context, actor dto.Actor, pendingOnly bool) ([]entity.MembershipRequest, error) {
	if pendingOnly {
		return s.requests.GetPendingByUserID(ctx, actor.ID)
	}
	return s.requests.GetByUserID(ctx, actor.ID)
}

// membershipSnapshot fetches the open episode for an invariant check;
// "no episode" comes back as nil rather than an error.
func (s *GovernanceService) membershipSnapshot(ctx context.Context, clubID string, userID int64) (*entity.MembershipEpisode, error) {
	current, err := s.memberships.GetCurrent(ctx, clubID, userID)
	if errors.Is(err, errorz.ErrNotAMember) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return current, nil
}
