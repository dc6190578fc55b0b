// internal/app/system/authz/authz.go

// Package authz holds the access-control policy for the step resource.
//
// Every predicate takes the requester's identity explicitly, so the rules can
// be exercised in isolation and no check ever reads ambient state.
package authz

import (
	"github.com/dalemusser/stephub/internal/app/system/auth"
	"github.com/dalemusser/stephub/internal/domain/models"
)

// Role values recognized by the policy.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one the directory accepts.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// IsAdmin reports whether u is an admin.
func IsAdmin(u *auth.SessionUser) bool {
	return u != nil && u.Role == RoleAdmin
}

// CanManageSteps reports whether u may create, edit, or delete steps.
func CanManageSteps(u *auth.SessionUser) bool {
	return IsAdmin(u)
}

// CanManageUsers reports whether u may create directory entries.
func CanManageUsers(u *auth.SessionUser) bool {
	return IsAdmin(u)
}

// CanCompleteStep reports whether u may mark step complete: the requester
// must hold the user role and be the step's assignee. Re-completing an
// already-completed step is allowed for the assignee (the operation is
// idempotent at the store level).
func CanCompleteStep(u *auth.SessionUser, step models.Step) bool {
	if u == nil || u.Role != RoleUser {
		return false
	}
	return step.AssignedTo == u.Username
}
