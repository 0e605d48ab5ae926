package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentDirection is the cash movement direction of a payment,
// derived from the invoice direction at creation time
type PaymentDirection string

const (
	PaymentDirectionIncoming PaymentDirection = "Entrata"
	PaymentDirectionOutgoing PaymentDirection = "Uscita"
)

func (d PaymentDirection) String() string {
	return string(d)
}

func (d PaymentDirection) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

func (d *PaymentDirection) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*d = PaymentDirection(str)
	return nil
}

func (d PaymentDirection) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *PaymentDirection) Scan(value interface{}) error {
	if value == nil {
		*d = PaymentDirectionIncoming
		return nil
	}
	switch v := value.(type) {
	case string:
		*d = PaymentDirection(v)
	case []byte:
		*d = PaymentDirection(string(v))
	}
	return nil
}
