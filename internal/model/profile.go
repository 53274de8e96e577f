package model

import (
	"strings"
	"time"
)

// Profile shares its ID with the owning user.
type Profile struct {
	ID        string     `db:"id" json:"id"`
	FullName  *string    `db:"full_name" json:"full_name"`
	Username  *string    `db:"username" json:"username"`
	AvatarURL *string    `db:"avatar_url" json:"avatar_url"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt *time.Time `db:"updated_at" json:"updated_at"`
}

// ProfileUpdate is a partial update: nil fields are left untouched.
type ProfileUpdate struct {
	FullName  *string `json:"full_name,omitempty"`
	Username  *string `json:"username,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func (u ProfileUpdate) IsEmpty() bool {
	return u.FullName == nil && u.Username == nil && u.AvatarURL == nil
}

// DisplayName prefers the full name, then the username.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.FullName != nil && strings.TrimSpace(*p.FullName) != "" {
		return strings.TrimSpace(*p.FullName)
	}
	if p.Username != nil {
		return strings.TrimSpace(*p.Username)
	}
	return ""
}

// UsernameFromEmail returns the local part of an email address.
func UsernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
