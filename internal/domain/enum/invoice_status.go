package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceStatus represents the state of an invoice.
// Pagata and Annullata are terminal. Scaduta is also derived at read time
// for Emessa invoices past their due date (see entity.Invoice).
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "Emessa"
	InvoiceStatusPaid      InvoiceStatus = "Pagata"
	InvoiceStatusOverdue   InvoiceStatus = "Scaduta"
	InvoiceStatusCancelled InvoiceStatus = "Annullata"
	// InvoiceStatusPartiallyPaid is part of the declared vocabulary but no
	// transition sets it: partial payments leave the invoice in Emessa.
	InvoiceStatusPartiallyPaid InvoiceStatus = "Parzialmente pagata"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transition
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusCancelled
}

func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(s))
}

func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = InvoiceStatus(str)
	return nil
}

func (s InvoiceStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *InvoiceStatus) Scan(value interface{}) error {
	if value == nil {
		*s = InvoiceStatusIssued
		return nil
	}
	switch v := value.(type) {
	case string:
		*s = InvoiceStatus(v)
	case []byte:
		*s = InvoiceStatus(string(v))
	}
	return nil
}
