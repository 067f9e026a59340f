package model

import (
	"time"

	"github.com/aandrewjuan1/planner-api/internal/schedule"
)

// Permission is the access level a collaborator holds on a shared item.
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"

	// PermissionOwner is never stored; it is synthesized for the item's
	// owner when resolving access.
	PermissionOwner Permission = "owner"
)

func (p Permission) IsValid() bool {
	return p == PermissionView || p == PermissionEdit
}

// CanEdit reports whether the permission allows mutations.
func (p Permission) CanEdit() bool {
	return p == PermissionEdit || p == PermissionOwner
}

// Share grants a user access to another user's task or event.
type Share struct {
	Kind       schedule.Kind `json:"kind"`
	ItemID     string        `json:"item_id"`
	UserID     string        `json:"user_id"`
	Permission Permission    `json:"permission"`
	CreatedAt  time.Time     `json:"created_at"`
}
