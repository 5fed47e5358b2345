package models

import "time"

// ShopProfile is the employer side of an account. A user owns at most one
// shop profile, and only verified profiles may publish vacancies.
type ShopProfile struct {
	ID     uint `gorm:"column:id;primaryKey" json:"id"`
	UserID uint `gorm:"column:user_id;uniqueIndex" json:"user_id"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	CompanyName string   `gorm:"column:company_name;type:text" json:"company_name"`
	Description string   `gorm:"column:description;type:text" json:"description"`
	Location    string   `gorm:"column:location;type:text" json:"location"`
	Latitude    *float64 `gorm:"column:latitude" json:"latitude"`
	Longitude   *float64 `gorm:"column:longitude" json:"longitude"`

	// object path on the media backend
	Logo string `gorm:"column:logo;type:text" json:"-"`

	IsVerified bool      `gorm:"column:is_verified;default:false" json:"is_verified"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (ShopProfile) TableName() string { return "shop_profiles" }
