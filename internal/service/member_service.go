package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"

	"clamood/console/internal/models"
	"clamood/console/internal/notice"
	"clamood/console/internal/query"
	"clamood/console/internal/resources"
)

const (
	MsgMemberCreated = "Member registered."
	MsgMemberUpdated = "Member updated."
	MsgMemberDeleted = "Member deleted."
)

type MemberService struct {
	members  *resources.MembersAPI
	branches *resources.BranchesAPI
	cache    *query.Cache
	notices  *notice.Center
	log      zerolog.Logger
}

func NewMemberService(
	members *resources.MembersAPI,
	branches *resources.BranchesAPI,
	cache *query.Cache,
	notices *notice.Center,
	log zerolog.Logger,
) *MemberService {
	return &MemberService{
		members:  members,
		branches: branches,
		cache:    cache,
		notices:  notices,
		log:      log,
	}
}

func MemberListKey(f models.MemberFilter) query.Key {
	return query.NewKey(query.ResourceMembers, resources.MemberListFilter(f).Params())
}

func MemberKey(id int64) query.Key {
	return query.NewKey(query.ResourceMembers, map[string]string{"id": strconv.FormatInt(id, 10)})
}

func MemberStatsKey() query.Key {
	return query.NewKey(query.ResourceMemberStats, nil)
}

func BranchListKey() query.Key {
	return query.NewKey(query.ResourceBranches, nil)
}

func (s *MemberService) List(ctx context.Context, f models.MemberFilter) (models.Page[models.Member], error) {
	return query.Get(ctx, s.cache, MemberListKey(f), func(ctx context.Context) (models.Page[models.Member], error) {
		return s.members.List(ctx, f)
	})
}

func (s *MemberService) Get(ctx context.Context, id int64) (models.Member, error) {
	return query.Get(ctx, s.cache, MemberKey(id), func(ctx context.Context) (models.Member, error) {
		return s.members.Get(ctx, id)
	})
}

func (s *MemberService) Stats(ctx context.Context) (models.MemberStats, error) {
	return query.Get(ctx, s.cache, MemberStatsKey(), s.members.Stats)
}

func (s *MemberService) Branches(ctx context.Context) (models.Page[models.Branch], error) {
	return query.Get(ctx, s.cache, BranchListKey(), s.branches.List)
}

func (s *MemberService) Create(ctx context.Context, form models.MemberForm) (models.Member, error) {
	m, err := query.Mutation(ctx, s.cache, resources.OpMemberCreate, func(ctx context.Context) (models.Member, error) {
		return s.members.Create(ctx, form)
	})
	if err != nil {
		return models.Member{}, err
	}
	s.notices.Success(MsgMemberCreated)
	s.log.Info().Int64("member_id", m.ID).Msg("member created")
	return m, nil
}

func (s *MemberService) Update(ctx context.Context, id int64, form models.MemberForm) (models.Member, error) {
	m, err := query.Mutation(ctx, s.cache, resources.OpMemberUpdate, func(ctx context.Context) (models.Member, error) {
		return s.members.Update(ctx, id, form)
	})
	if err != nil {
		return models.Member{}, err
	}
	s.notices.Success(MsgMemberUpdated)
	s.log.Info().Int64("member_id", id).Msg("member updated")
	return m, nil
}

func (s *MemberService) Delete(ctx context.Context, id int64) error {
	_, err := query.Mutation(ctx, s.cache, resources.OpMemberDelete, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.members.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.notices.Success(MsgMemberDeleted)
	s.log.Info().Int64("member_id", id).Msg("member deleted")
	return nil
}
