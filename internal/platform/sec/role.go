// Copyright (c) 2026 Sanctorale. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted catalogue access
	RoleAdmin UserRole = "admin"

	// Can create and edit catalogue entries but not delete them
	RoleEditor UserRole = "editor"

	// Default role for authenticated readers
	RoleViewer UserRole = "viewer"
)

// IsValid reports whether r is a recognised [UserRole] value.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleEditor, RoleViewer:
		return true
	}
	return false
}

// String implements [fmt.Stringer].
func (r UserRole) String() string {
	return string(r)
}
