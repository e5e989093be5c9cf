package resources

import (
	"context"

	"clamood/console/internal/gateway"
	"clamood/console/internal/models"
)

type MembersAPI struct {
	r Requester
}

func NewMembersAPI(r Requester) *MembersAPI {
	return &MembersAPI{r: r}
}

// MemberListFilter converts the page filter into the list filter the API takes.
func MemberListFilter(f models.MemberFilter) ListFilter {
	return ListFilter{
		Page:   f.Page,
		Search: f.Search,
		Status: string(f.MembershipStatus),
		Branch: f.Branch,
	}
}

func (a *MembersAPI) List(ctx context.Context, f models.MemberFilter) (models.Page[models.Member], error) {
	var out models.Page[models.Member]
	q := MemberListFilter(f).values("membership_status")
	err := call(ctx, a.r, OpMemberList, 0, nil, &out, gateway.WithQuery(q))
	return out, err
}

func (a *MembersAPI) Get(ctx context.Context, id int64) (models.Member, error) {
	var out models.Member
	err := call(ctx, a.r, OpMemberGet, id, nil, &out)
	return out, err
}

func (a *MembersAPI) Create(ctx context.Context, form models.MemberForm) (models.Member, error) {
	var out models.Member
	err := call(ctx, a.r, OpMemberCreate, 0, form, &out)
	return out, err
}

func (a *MembersAPI) Update(ctx context.Context, id int64, form models.MemberForm) (models.Member, error) {
	var out models.Member
	err := call(ctx, a.r, OpMemberUpdate, id, form, &out)
	return out, err
}

func (a *MembersAPI) Delete(ctx context.Context, id int64) error {
	return call(ctx, a.r, OpMemberDelete, id, nil, nil)
}

func (a *MembersAPI) Stats(ctx context.Context) (models.MemberStats, error) {
	var out models.MemberStats
	err := call(ctx, a.r, OpMemberStats, 0, nil, &out)
	return out, err
}
