package domain

import "time"

// Review rating is 1-5 inclusive. CreatedAt is set once at creation.
type Review struct {
	ID        int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Rating    int       `gorm:"not null" json:"rating" form:"rating"`
	Comment   string    `gorm:"size:1000" json:"comment" form:"comment"`
	UserId    int64     `gorm:"index;not null" json:"user_id,string" form:"user_id"`
	ProductId int64     `gorm:"index;not null" json:"product_id,string" form:"product_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Review) TableName() string {
	return "reviews"
}
