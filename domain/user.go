package domain

import "time"

// UserRole distinguishes donors, who post food, from NGOs, who claim it.
type UserRole string

const (
	RoleDonor UserRole = "donor"
	RoleNGO   UserRole = "ngo"
)

// User represents an authenticated identity in the platform.
type User struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email,omitempty"`
	Role      UserRole          `json:"role"`
	Phone     string            `json:"phone,omitempty"`
	Address   string            `json:"address,omitempty"`
	Status    string            `json:"status"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (u *User) IsActive() bool {
	return u != nil && u.Status == "active"
}

func (u *User) IsNGO() bool {
	return u != nil && u.Role == RoleNGO
}
