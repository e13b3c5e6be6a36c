package models

// Product is one inventory line. ID is assigned by the store on insert and is
// zero on values built from user input.
type Product struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"      json:"id"`
	Name     string  `gorm:"type:text;not null"            json:"name"`
	Barcode  string  `gorm:"type:text;not null;uniqueIndex" json:"barcode"`
	Quantity int     `gorm:"not null"                      json:"quantity"`
	Supplier *string `gorm:"type:text"                     json:"supplier"`
}

// TableName pins the table name regardless of gorm naming strategy.
func (Product) TableName() string { return "products" }

// NewProduct builds a Product from form values. An empty supplier is stored
// as NULL.
func NewProduct(name, barcode string, quantity int, supplier string) Product {
	p := Product{Name: name, Barcode: barcode, Quantity: quantity}
	if supplier != "" {
		p.Supplier = &supplier
	}
	return p
}

// SupplierName returns the supplier or "" when none is recorded.
func (p Product) SupplierName() string {
	if p.Supplier == nil {
		return ""
	}
	return *p.Supplier
}
