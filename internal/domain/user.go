package domain

import (
	"time"
)

// User is any registered account. Donor-specific fields are only meaningful
// when Role is RoleDonor.
type User struct {
	ID            string     `json:"id" yaml:"id"`
	Name          string     `json:"name" yaml:"name"`
	Email         string     `json:"email" yaml:"email"`
	PasswordHash  string     `json:"password_hash,omitempty" yaml:"password_hash,omitempty"`
	Role          UserRole   `json:"role" yaml:"role"`
	Phone         string     `json:"phone" yaml:"phone"`
	BloodGroup    BloodType  `json:"blood_group,omitempty" yaml:"blood_group,omitempty"`
	Location      string     `json:"location" yaml:"location"`
	Age           *int       `json:"age,omitempty" yaml:"age,omitempty"`
	Gender        *string    `json:"gender,omitempty" yaml:"gender,omitempty"`
	AvatarURL     *string    `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	IsActive      bool       `json:"is_active" yaml:"is_active"`
	EmailVerified bool       `json:"email_verified" yaml:"email_verified"`
	CreatedAt     time.Time  `json:"created_at" yaml:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	Available        bool       `json:"available" yaml:"available"`
	LastDonationDate *time.Time `json:"last_donation_date,omitempty" yaml:"last_donation_date,omitempty"`
	NextEligibleDate *time.Time `json:"next_eligible_date,omitempty" yaml:"next_eligible_date,omitempty"`
	TotalDonations   int        `json:"total_donations" yaml:"total_donations"`
	// Distance is filled by a distance provider relative to a search origin.
	Distance *float64 `json:"distance,omitempty" yaml:"distance,omitempty"`
}

type UserRole string

const (
	RoleDonor     UserRole = "donor"
	RoleRecipient UserRole = "recipient"
	RoleAdmin     UserRole = "admin"
)

func (r UserRole) IsValid() bool {
	switch r {
	case RoleDonor, RoleRecipient, RoleAdmin:
		return true
	default:
		return false
	}
}

func (u *User) IsDonor() bool {
	return u.Role == RoleDonor
}

func (u *User) HasRole(requiredRole UserRole) bool {
	if u.Role == RoleAdmin {
		return true
	}
	return u.Role == requiredRole
}

// IsPastCooldown reports whether the donor's post-donation waiting period has
// ended by today. A donor who never donated has no cooldown.
func (u *User) IsPastCooldown(today time.Time) bool {
	if u.NextEligibleDate == nil {
		return true
	}
	return !DateOf(*u.NextEligibleDate).After(DateOf(today))
}

// Public strips credentials before the user leaves the service boundary.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

func PublicUsers(users []User) []User {
	out := make([]User, len(users))
	for i, u := range users {
		out[i] = u.Public()
	}
	return out
}

type RegisterInput struct {
	Name       string    `json:"name" validate:"required,min=2"`
	Email      string    `json:"email" validate:"required,email"`
	Password   string    `json:"password" validate:"required,min=8"`
	Role       UserRole  `json:"role" validate:"required,oneof=donor recipient"`
	Phone      string    `json:"phone" validate:"required"`
	BloodGroup BloodType `json:"blood_group,omitempty" validate:"omitempty,bloodtype"`
	Location   string    `json:"location" validate:"required"`
	Age        *int      `json:"age,omitempty" validate:"omitempty,gte=16,lte=100"`
	Gender     *string   `json:"gender,omitempty" validate:"omitempty,oneof=Male Female Other"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name       *string    `json:"name,omitempty" validate:"omitempty,min=2"`
	Phone      *string    `json:"phone,omitempty"`
	Location   *string    `json:"location,omitempty" validate:"omitempty,min=2"`
	BloodGroup *BloodType `json:"blood_group,omitempty" validate:"omitempty,bloodtype"`
	Age        *int       `json:"age,omitempty" validate:"omitempty,gte=16,lte=100"`
	Gender     *string    `json:"gender,omitempty" validate:"omitempty,oneof=Male Female Other"`
	AvatarURL  *string    `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

type ChangePasswordInput struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
