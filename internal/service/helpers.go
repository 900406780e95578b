package service

import (
	"github.com/gladgrade/gladgrade-server/internal/model"
	"github.com/gladgrade/gladgrade-server/pkg/response"
)

// canModify implements the resource-level ownership rule: the owner, or an
// actor holding a staff role, may mutate the resource.
func canModify(actor response.Actor, ownerID uint) bool {
	if actor.UserID == ownerID {
		return true
	}
	return actor.HasRole(model.StaffRoles...)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
