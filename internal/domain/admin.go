package domain

import "time"

// Admin is an authenticated actor. The app memberships are resolved once at
// authentication time (direct grants plus apps owned by the admin's team) and
// are immutable for the remainder of the request.
type Admin struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	SiteAdmin bool      `json:"site_admin" db:"site_admin"`
	TeamID    int64     `json:"team_id" db:"team_id"`
	AppIDs    []int64   `json:"app_ids"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// MemberOf reports whether the admin has a membership in the given app.
func (a *Admin) MemberOf(appID int64) bool {
	for _, id := range a.AppIDs {
		if id == appID {
			return true
		}
	}
	return false
}
