package domain

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is a marketplace account. Providers offering services use the same
// record with ServiceType set. Accounts are deactivated, never hard-deleted.
type User struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Username    string    `gorm:"uniqueIndex;size:64" json:"username" form:"username"`
	Password    string    `gorm:"size:128" json:"-" form:"-"`
	Role        string    `gorm:"size:16;index" json:"role" form:"role"`
	Email       string    `gorm:"size:128" json:"email" form:"email"`
	FullName    string    `gorm:"size:128" json:"full_name" form:"full_name"`
	Phone       string    `gorm:"size:32" json:"phone" form:"phone"`
	Address     string    `gorm:"size:255" json:"address" form:"address"`
	ServiceType string    `gorm:"size:64" json:"service_type" form:"service_type"`
	Active      bool      `gorm:"default:true" json:"active" form:"active"`
	Available   bool      `gorm:"default:true" json:"available" form:"available"`
	LastLogin   time.Time `json:"last_login"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (User) TableName() string {
	return "users"
}
