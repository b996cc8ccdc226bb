// internal/models/profile.go
package models

import "time"

// Profile roles.
const (
	RoleFarmer  = "farmer"
	RoleOfficer = "officer"
)

// Profile is a platform user (farmer or horticulture officer).
type Profile struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
