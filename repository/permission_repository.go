package repository

import (
	"context"
	"slices"

	"casedesk-backend/models"
)

// PermissionRepository stores the permission set of each user
type PermissionRepository struct {
	perms *table[[]string]
}

func NewPermissionRepository() *PermissionRepository {
	return &PermissionRepository{perms: newTable[[]string]()}
}

// Get returns the user's permissions, empty when none were ever set
func (r *PermissionRepository) Get(ctx context.Context, userID string) []string {
	p, ok := r.perms.get(userID)
	if !ok {
		return []string{}
	}
	return slices.Clone(p)
}

// Replace overwrites the user's permission set. Duplicates are collapsed and
// the first occurrence order is kept.
func (r *PermissionRepository) Replace(ctx context.Context, userID string, permissions []string) {
	set := make([]string, 0, len(permissions))
	for _, p := range permissions {
		if !slices.Contains(set, p) {
			set = append(set, p)
		}
	}
	r.perms.put(userID, set)
}

// Missing returns the requested permissions the user does not hold, in request order
func (r *PermissionRepository) Missing(ctx context.Context, userID string, required []string) []string {
	held, _ := r.perms.get(userID)
	var missing []string
	for _, p := range required {
		if !slices.Contains(held, p) {
			missing = append(missing, p)
		}
	}
	return missing
}

func (r *PermissionRepository) Has(ctx context.Context, userID, permission string) bool {
	held, _ := r.perms.get(userID)
	return slices.Contains(held, permission)
}

// EnsureAdmin widens the user's set with the default admin permissions
func (r *PermissionRepository) EnsureAdmin(ctx context.Context, userID string) {
	r.perms.upsert(userID, func() []string { return nil }, func(p *[]string) {
		for _, perm := range models.DefaultAdminPermissions {
			if !slices.Contains(*p, perm) {
				*p = append(*p, perm)
			}
		}
	})
}
