package domain

import "time"

// RoleUser is assigned to every new account.
const RoleUser = "user"

// User models an account. PasswordHash never leaves the process in JSON.
type User struct {
	ID           string    `json:"_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	LastName     string    `json:"lastName,omitempty"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"isActive"`
	Roles        []string  `json:"roles"`
	Company      string    `json:"company,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Position     string    `json:"position,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserPatch is a set of optional field updates. A nil field is left untouched.
type UserPatch struct {
	Email        *string
	Name         *string
	LastName     *string
	PasswordHash *string
	Company      *string
	ProfileImage *string
	Position     *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p UserPatch) IsEmpty() bool {
	return p.Email == nil && p.Name == nil && p.LastName == nil && p.PasswordHash == nil &&
		p.Company == nil && p.ProfileImage == nil && p.Position == nil
}

// Apply merges the patch into u field by field.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
	if p.Company != nil {
		u.Company = *p.Company
	}
	if p.ProfileImage != nil {
		u.ProfileImage = *p.ProfileImage
	}
	if p.Position != nil {
		u.Position = *p.Position
	}
}

// TokenPayload is the verified claim set of an access token.
type TokenPayload struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
