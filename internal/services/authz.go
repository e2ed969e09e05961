package services

import "github.com/inkwell-blog/apiserver/types"

// canMutate implements the author-or-admin rule applied before every
// post or comment mutation.
func canMutate(resourceAuthorID, requesterID string, role types.Role) bool {
	return resourceAuthorID == requesterID || role == types.RoleAdmin
}
