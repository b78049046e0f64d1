// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}

type Product struct {
	BaseModel
	Name        string          `json:"name" gorm:"size:80;not null;index"`
	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	ImgURL      string          `json:"imgUrl" gorm:"size:512"`

	// Relationships
	Categories []Category `json:"categories" gorm:"many2many:product_categories;"`
}
