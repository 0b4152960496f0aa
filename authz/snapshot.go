package authz

import "time"

// DefaultSnapshotTTL is the maximum age before a cached snapshot is
// considered stale and eligible for refetch at projection time.
const DefaultSnapshotTTL = 5 * time.Minute

// Snapshot is the authorization state of a single user as reported by the
// authorization service. Snapshots are replaced wholesale on every successful
// fetch and never merged or partially updated.
type Snapshot struct {
	UserID      string `json:"user_id"`
	IsSuperuser bool   `json:"is_superuser"`

	RoleAssignments     []RoleAssignment     `json:"role_assignments"`
	GroupMemberships    []GroupMembership    `json:"group_memberships"`
	PermissionOverrides []PermissionOverride `json:"permission_overrides"`
}

// RoleAssignment binds a user to a role on a specific resource.
type RoleAssignment struct {
	UserID       string `json:"user_id"`
	RoleID       string `json:"role_id"`
	ResourceID   string `json:"resource_id"`
	ResourceType string `json:"resource_type"`
	CreatedAt    int64  `json:"created_at"`
}

// GroupMembership binds a user to a group on a specific resource.
type GroupMembership struct {
	UserID       string `json:"user_id"`
	GroupID      string `json:"group_id"`
	ResourceID   string `json:"resource_id"`
	ResourceType string `json:"resource_type"`
	CreatedAt    int64  `json:"created_at"`
}

// PermissionOverride carries per-resource allow/deny action sets that take
// precedence over role- and group-derived permissions.
type PermissionOverride struct {
	UserID       string   `json:"user_id"`
	ResourceID   string   `json:"resource_id"`
	ResourceType string   `json:"resource_type"`
	AllowActions []string `json:"allow_actions"`
	DenyActions  []string `json:"deny_actions"`
}

// Clone returns a deep copy of the snapshot. A nil receiver yields nil.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	out := &Snapshot{
		UserID:      s.UserID,
		IsSuperuser: s.IsSuperuser,
	}
	if len(s.RoleAssignments) > 0 {
		out.RoleAssignments = make([]RoleAssignment, len(s.RoleAssignments))
		copy(out.RoleAssignments, s.RoleAssignments)
	}
	if len(s.GroupMemberships) > 0 {
		out.GroupMemberships = make([]GroupMembership, len(s.GroupMemberships))
		copy(out.GroupMemberships, s.GroupMemberships)
	}
	if len(s.PermissionOverrides) > 0 {
		out.PermissionOverrides = make([]PermissionOverride, len(s.PermissionOverrides))
		for i, ov := range s.PermissionOverrides {
			out.PermissionOverrides[i] = PermissionOverride{
				UserID:       ov.UserID,
				ResourceID:   ov.ResourceID,
				ResourceType: ov.ResourceType,
				AllowActions: cloneStrings(ov.AllowActions),
				DenyActions:  cloneStrings(ov.DenyActions),
			}
		}
	}

	return out
}

// Stale reports whether a snapshot fetched at fetchedAt (epoch seconds) is
// older than ttl. An unset stamp (zero) is always stale.
func Stale(fetchedAt int64, ttl time.Duration, now time.Time) bool {
	if fetchedAt == 0 {
		return true
	}
	return now.Sub(time.Unix(fetchedAt, 0)) > ttl
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
