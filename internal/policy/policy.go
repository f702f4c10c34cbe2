// Package policy centralizes authorization decisions for the application.
// Services call Authorize() instead of performing ad-hoc permission checks,
// so the rule set is testable without a live datastore.
package policy

import "inkwell/internal/models"

// Principal is the authenticated actor a decision is made for. Callers
// resolve it from a verified token before asking for a decision.
type Principal struct {
	ID        uint
	Superuser bool
}

// Action identifies an operation on a resource kind.
type Action string

// Actions subject to authorization.
const (
	ActionCreatePost    Action = "post:create"
	ActionUpdatePost    Action = "post:update"
	ActionDeletePost    Action = "post:delete"
	ActionCreateComment Action = "comment:create"
	ActionUpdateComment Action = "comment:update"
	ActionDeleteComment Action = "comment:delete"
	ActionManageUsers   Action = "user:manage"
	ActionDeleteUser    Action = "user:delete"
	ActionPromoteUser   Action = "user:promote"
	ActionManageTags    Action = "tag:manage"
	ActionViewDeleted   Action = "deleted:view"
)

// restricted reports whether the action requires elevated scope regardless
// of ownership: user management, tag management and viewing soft-deleted
// rows are superuser-only.
func (a Action) restricted() bool {
	switch a {
	case ActionManageUsers, ActionDeleteUser, ActionPromoteUser,
		ActionManageTags, ActionViewDeleted:
		return true
	}
	return false
}

// ownerMutation reports whether the action mutates a post or comment and
// is therefore gated on ownership.
func (a Action) ownerMutation() bool {
	switch a {
	case ActionUpdatePost, ActionDeletePost,
		ActionUpdateComment, ActionDeleteComment:
		return true
	}
	return false
}

// Authorize decides whether the principal may perform action on a resource
// owned by ownerID. It is a pure function: rules are evaluated in order and
// the first match wins. A nil return means Allow; a denial is reported as a
// Forbidden error. Ownership is strict equality of principal identifiers;
// there is no partial or group ownership.
//
//  1. Superusers bypass ownership for all actions.
//  2. Restricted actions are denied to everyone else.
//  3. Mutations on posts and comments are denied unless the principal
//     owns the resource.
//  4. Everything else is allowed.
func Authorize(p Principal, action Action, ownerID uint) error {
	if p.Superuser {
		return nil
	}
	if action.restricted() {
		return models.NewForbiddenError("Insufficient privileges")
	}
	if action.ownerMutation() && p.ID != ownerID {
		return models.NewForbiddenError("You do not own this resource")
	}
	return nil
}
