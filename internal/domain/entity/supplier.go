package entity

import (
	"time"
)

// Supplier represents a fornitore the association buys goods or services
// from. Suppliers are the payer side of passive (payable) invoices.
type Supplier struct {
	ID          uint      `gorm:"primaryKey" json:"id_fornitore"`
	CompanyName string    `gorm:"column:ragione_sociale;size:100;not null" json:"ragione_sociale"`
	VATNumber   string    `gorm:"column:partita_iva;size:11;uniqueIndex;not null" json:"partita_iva"`
	Email       string    `gorm:"column:email;size:255;not null" json:"email"`
	Phone       string    `gorm:"column:telefono;size:20;not null" json:"telefono"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Invoices []Invoice `gorm:"foreignKey:SupplierID" json:"-"`
}

// TableName returns the table name for the Supplier model
func (Supplier) TableName() string {
	return "fornitori"
}
