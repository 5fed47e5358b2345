package models

import "time"

type UserRole string

const (
	RoleShopOwner UserRole = "SHOP_OWNER"
	RoleJobSeeker UserRole = "JOB_SEEKER"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleShopOwner, RoleJobSeeker:
		return true
	}
	return false
}

type User struct {
	ID           uint     `gorm:"column:id;primaryKey" json:"id"`
	Username     string   `gorm:"column:username;type:text;uniqueIndex" json:"username"`
	Email        string   `gorm:"column:email;type:text" json:"email"`
	Role         UserRole `gorm:"column:role;type:text;default:JOB_SEEKER" json:"role"`
	MobileNumber string   `gorm:"column:mobile_number;type:text" json:"mobile_number"`

	// object path on the media backend, not a URL
	ProfilePhoto string `gorm:"column:profile_photo;type:text" json:"-"`

	PasswordHash string `gorm:"column:password_hash;type:text" json:"-"`

	// staff users can verify shop profiles
	IsStaff bool `gorm:"column:is_staff;default:false" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string { return "users" }
