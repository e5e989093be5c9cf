package resources

import (
	"context"

	"clamood/console/internal/models"
)

type BranchesAPI struct {
	r Requester
}

func NewBranchesAPI(r Requester) *BranchesAPI {
	return &BranchesAPI{r: r}
}

func (a *BranchesAPI) List(ctx context.Context) (models.Page[models.Branch], error) {
	var out models.Page[models.Branch]
	err := call(ctx, a.r, OpBranchList, 0, nil, &out)
	return out, err
}

func (a *BranchesAPI) Get(ctx context.Context, id int64) (models.Branch, error) {
	var out models.Branch
	err := call(ctx, a.r, OpBranchGet, id, nil, &out)
	return out, err
}
