package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Menu represents a single item on the restaurant menu
type Menu struct {
	ID        int             `gorm:"primaryKey" json:"id"`
	Title     string          `gorm:"size:255;not null" json:"title"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Inventory int             `gorm:"not null" json:"inventory"`
}

func (Menu) TableName() string {
	return "menu_items"
}

// String renders the item as "<title> : <price>" with the price printed
// at its stored precision, no decimal padding ("IceCream : 80").
func (m Menu) String() string {
	return fmt.Sprintf("%s : %s", m.Title, m.Price.String())
}
