package query

import "clamood/console/internal/resources"

// affects is the static table of what each mutation invalidates.
var affects = map[resources.Operation][]Resource{
	resources.OpMemberCreate:       {ResourceMembers, ResourceMemberStats},
	resources.OpMemberUpdate:       {ResourceMembers, ResourceMemberStats},
	resources.OpMemberDelete:       {ResourceMembers, ResourceMemberStats},
	resources.OpAuthChangePassword: {ResourceProfile},
}

// Affects returns the resources a mutation invalidates and whether op is a
// known mutation.
func Affects(op resources.Operation) ([]Resource, bool) {
	rs, ok := affects[op]
	return append([]Resource(nil), rs...), ok
}
