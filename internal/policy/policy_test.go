package policy

import (
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorize(t *testing.T) {
	t.Parallel()

	owner := Principal{ID: 1}
	other := Principal{ID: 2}
	super := Principal{ID: 3, Superuser: true}

	tests := []struct {
		name    string
		actor   Principal
		action  Action
		ownerID uint
		allowed bool
	}{
		{"superuser bypasses ownership", super, ActionUpdatePost, owner.ID, true},
		{"superuser may delete users", super, ActionDeleteUser, 0, true},
		{"superuser may promote users", super, ActionPromoteUser, 0, true},
		{"superuser may view deleted", super, ActionViewDeleted, 0, true},
		{"superuser may manage tags", super, ActionManageTags, 0, true},

		{"owner may update own post", owner, ActionUpdatePost, owner.ID, true},
		{"owner may delete own post", owner, ActionDeletePost, owner.ID, true},
		{"owner may update own comment", owner, ActionUpdateComment, owner.ID, true},
		{"owner may delete own comment", owner, ActionDeleteComment, owner.ID, true},

		{"non-owner cannot update post", other, ActionUpdatePost, owner.ID, false},
		{"non-owner cannot delete post", other, ActionDeletePost, owner.ID, false},
		{"non-owner cannot update comment", other, ActionUpdateComment, owner.ID, false},
		{"non-owner cannot delete comment", other, ActionDeleteComment, owner.ID, false},

		{"regular user cannot manage users", owner, ActionManageUsers, 0, false},
		{"regular user cannot delete users", owner, ActionDeleteUser, 0, false},
		{"regular user cannot promote even self", owner, ActionPromoteUser, owner.ID, false},
		{"regular user cannot view deleted", owner, ActionViewDeleted, 0, false},
		{"regular user cannot manage tags", owner, ActionManageTags, 0, false},

		{"anyone may create posts", other, ActionCreatePost, other.ID, true},
		{"anyone may create comments", other, ActionCreateComment, other.ID, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Authorize(tt.actor, tt.action, tt.ownerID)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			appErr, ok := err.(*models.AppError)
			require.True(t, ok, "denial must be an AppError")
			assert.Equal(t, models.CodeForbidden, appErr.Code)
		})
	}
}

func TestAuthorize_OwnershipIsStrictEquality(t *testing.T) {
	t.Parallel()

	// No group or partial ownership: only the exact owner id passes.
	err := Authorize(Principal{ID: 7}, ActionUpdatePost, 8)
	assert.Error(t, err)
	assert.NoError(t, Authorize(Principal{ID: 8}, ActionUpdatePost, 8))
}
