package entity

import (
	"encoding/json"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/enum"
)

// Invoice represents a fattura. The payer is exactly one of member or
// supplier: receivable (Attiva) invoices reference a member, payable
// (Passiva) invoices reference a supplier. Amounts are cents and
// TotalAmount = TaxableAmount + TaxAmount holds at creation.
type Invoice struct {
	ID            uint                  `gorm:"primaryKey" json:"id_fattura"`
	Number        string                `gorm:"column:numero_fattura;size:50;uniqueIndex;not null" json:"numero_fattura"`
	IssueDate     time.Time             `gorm:"column:data_emissione;type:date;not null" json:"data_emissione"`
	DueDate       time.Time             `gorm:"column:data_scadenza;type:date;not null" json:"data_scadenza"`
	MemberID      *uint                 `gorm:"column:fk_associato;index" json:"fk_associato,omitempty"`
	SupplierID    *uint                 `gorm:"column:fk_fornitore;index" json:"fk_fornitore,omitempty"`
	Direction     enum.InvoiceDirection `gorm:"column:tipo_fattura;size:10;not null" json:"tipo_fattura"`
	TaxableAmount int64                 `gorm:"column:imponibile;not null" json:"-"` // cents
	TaxAmount     int64                 `gorm:"column:iva;not null" json:"-"`        // cents
	TotalAmount   int64                 `gorm:"column:importo_totale;not null" json:"-"` // cents
	Status        enum.InvoiceStatus    `gorm:"column:stato;size:30;default:'Emessa'" json:"-"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`

	// Relationships
	Member   *Member       `gorm:"foreignKey:MemberID" json:"-"`
	Supplier *Supplier     `gorm:"foreignKey:SupplierID" json:"-"`
	Lines    []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"dettagli,omitempty"`
	Payments []Payment     `gorm:"foreignKey:InvoiceID" json:"pagamenti,omitempty"`
}

// MarshalJSON converts cents to decimals and reports the effective status
// (Scaduta for issued invoices past their due date)
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		TaxableAmount float64            `json:"imponibile"`
		TaxAmount     float64            `json:"iva"`
		TotalAmount   float64            `json:"importo_totale"`
		Status        enum.InvoiceStatus `json:"stato"`
	}{
		Alias:         Alias(i),
		TaxableAmount: float64(i.TaxableAmount) / 100,
		TaxAmount:     float64(i.TaxAmount) / 100,
		TotalAmount:   float64(i.TotalAmount) / 100,
		Status:        i.EffectiveStatus(time.Now()),
	})
}

// EffectiveStatus derives the read-time status: an issued invoice past its
// due date reads as Scaduta without a stored transition.
func (i *Invoice) EffectiveStatus(now time.Time) enum.InvoiceStatus {
	if i.Status == enum.InvoiceStatusIssued && i.DueDate.Before(now.Truncate(24*time.Hour)) {
		return enum.InvoiceStatusOverdue
	}
	return i.Status
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "fatture"
}

// InvoiceLine is a dettaglio fattura. At most one of AssignmentID and
// DeliveryID is set, tracing the line back to its originating record.
type InvoiceLine struct {
	ID           uint      `gorm:"primaryKey" json:"id_dettaglio"`
	InvoiceID    uint      `gorm:"column:fk_fattura;not null;index" json:"fk_fattura"`
	Description  string    `gorm:"column:descrizione;size:500;not null" json:"descrizione"`
	Quantity     int       `gorm:"column:quantita;not null;default:1" json:"quantita"`
	UnitPrice    int64     `gorm:"column:prezzo_unitario;not null" json:"-"` // cents
	LineTotal    int64     `gorm:"column:totale_riga;not null" json:"-"`     // cents
	AssignmentID *uint     `gorm:"column:fk_assegnazione;index" json:"fk_assegnazione,omitempty"`
	DeliveryID   *uint     `gorm:"column:fk_erogazione;index" json:"fk_erogazione,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Invoice    Invoice     `gorm:"foreignKey:InvoiceID" json:"-"`
	Assignment *Assignment `gorm:"foreignKey:AssignmentID" json:"-"`
	Delivery   *Delivery   `gorm:"foreignKey:DeliveryID" json:"-"`
}

// MarshalJSON converts the cents amounts to decimals for API responses
func (l InvoiceLine) MarshalJSON() ([]byte, error) {
	type Alias InvoiceLine
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"prezzo_unitario"`
		LineTotal float64 `json:"totale_riga"`
	}{
		Alias:     Alias(l),
		UnitPrice: float64(l.UnitPrice) / 100,
		LineTotal: float64(l.LineTotal) / 100,
	})
}

// TableName returns the table name for the InvoiceLine model
func (InvoiceLine) TableName() string {
	return "dettagli_fatture"
}
