package domain

import (
	"time"

	"gorm.io/gorm"
)

// User is a staff/admin account for the back office. Kiosks are anonymous.
type User struct {
	ID             uint    `gorm:"primaryKey"`
	FullName       string  `gorm:"column:full_name;not null"`
	Email          string  `gorm:"column:email;unique;not null"`
	Password       string  `gorm:"column:password;not null"`
	Role           string  `gorm:"column:role;default:staff"`
	OrganizationID string  `gorm:"column:organization_id;type:uuid"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "users"
}
