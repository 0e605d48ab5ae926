package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// InvoiceDirection distinguishes receivables from payables.
// Attiva: money owed to the association (billed to a member).
// Passiva: money the association owes (billed by a supplier).
type InvoiceDirection string

const (
	InvoiceDirectionReceivable InvoiceDirection = "Attiva"
	InvoiceDirectionPayable    InvoiceDirection = "Passiva"
)

func (d InvoiceDirection) String() string {
	return string(d)
}

// PaymentDirection returns the movement direction payments on an invoice
// of this direction must carry
func (d InvoiceDirection) PaymentDirection() PaymentDirection {
	if d == InvoiceDirectionPayable {
		return PaymentDirectionOutgoing
	}
	return PaymentDirectionIncoming
}

func (d InvoiceDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

func (d *InvoiceDirection) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*d = InvoiceDirection(str)
	return nil
}

func (d InvoiceDirection) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *InvoiceDirection) Scan(value interface{}) error {
	if value == nil {
		*d = InvoiceDirectionReceivable
		return nil
	}
	switch v := value.(type) {
	case string:
		*d = InvoiceDirection(v)
	case []byte:
		*d = InvoiceDirection(string(v))
	}
	return nil
}
