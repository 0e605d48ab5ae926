package entity

import (
	"encoding/json"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/enum"
)

// Payment represents a pagamento recorded against an invoice. Direction is
// derived from the invoice direction when the payment is created and never
// changes afterwards.
type Payment struct {
	ID          uint                  `gorm:"primaryKey" json:"id_pagamento"`
	InvoiceID   uint                  `gorm:"column:fk_fattura;not null;index" json:"fk_fattura"`
	PaymentDate time.Time             `gorm:"column:data_pagamento;type:date;not null" json:"data_pagamento"`
	Amount      int64                 `gorm:"column:importo;not null" json:"-"` // cents, > 0
	Method      string                `gorm:"column:metodo;size:50;not null" json:"metodo"`
	Direction   enum.PaymentDirection `gorm:"column:tipo_movimento;size:10;not null" json:"tipo_movimento"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`

	// Relationships
	Invoice Invoice `gorm:"foreignKey:InvoiceID" json:"-"`
}

// MarshalJSON converts the cents amount to a decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"importo"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "pagamenti"
}
