package domain

import "time"

const (
	// KindProduct is a tangible item with tracked stock.
	KindProduct = "product"
	// KindService is an intangible offering; Stock stays nil and
	// ordering never checks or mutates inventory.
	KindService = "service"
)

// Product is the single orderable catalog record. Tangible products carry a
// non-nil Stock that must never go negative; services leave Stock nil and are
// owned by a provider account.
type Product struct {
	ID          int64     `gorm:"primaryKey" json:"id,string" form:"id"`
	Name        string    `gorm:"index;size:200" json:"name" form:"name"`
	Description string    `gorm:"type:text" json:"description" form:"description"`
	Price       float64   `json:"price" form:"price"`
	Stock       *int      `json:"stock,omitempty" form:"stock"`
	Kind        string    `gorm:"size:32;index" json:"kind" form:"kind"`
	Category    string    `gorm:"size:64;index" json:"category" form:"category"`
	Image       string    `gorm:"size:1024" json:"image" form:"image"`
	Status      string    `gorm:"size:20;index;default:'enabled'" json:"status" form:"status"`
	ProviderId  int64     `gorm:"index" json:"provider_id,string" form:"provider_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// StockTracked reports whether inventory applies to this item.
func (p *Product) StockTracked() bool {
	return p.Stock != nil
}
