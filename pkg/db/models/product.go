package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/angelmondragon/urbanx-storefront/pkg/db/types"
	"github.com/angelmondragon/urbanx-storefront/pkg/enums"
)

// ProductColor is a named swatch stored inside the colors JSON column.
type ProductColor struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Product is the catalog row backing the SQL catalog.
type Product struct {
	ID            string                         `gorm:"column:id;primaryKey"`
	Position      int                            `gorm:"column:position;not null;default:0"`
	Name          string                         `gorm:"column:name;not null"`
	Price         decimal.Decimal                `gorm:"column:price;type:numeric(10,2);not null"`
	OriginalPrice decimal.NullDecimal            `gorm:"column:original_price;type:numeric(10,2)"`
	Description   string                         `gorm:"column:description;not null;default:''"`
	ImageURL      string                         `gorm:"column:image_url;not null;default:''"`
	ImageURLs     dbtypes.JSONList[string]       `gorm:"column:image_urls;not null"`
	Category      enums.ProductCategory          `gorm:"column:category;not null"`
	Tags          dbtypes.JSONList[string]       `gorm:"column:tags;not null"`
	Sizes         dbtypes.JSONList[string]       `gorm:"column:sizes;not null"`
	Colors        dbtypes.JSONList[ProductColor] `gorm:"column:colors;not null"`
	InStock       bool                           `gorm:"column:in_stock;not null;default:true"`
	IsNew         bool                           `gorm:"column:is_new;not null;default:false"`
	IsLimited     bool                           `gorm:"column:is_limited;not null;default:false"`
	ReleaseDate   *time.Time                     `gorm:"column:release_date"`
	CreatedAt     time.Time                      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time                      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string {
	return "products"
}
