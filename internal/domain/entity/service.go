package entity

import (
	"encoding/json"
	"time"
)

// Service represents a prestazione: a non-physical offering (course,
// regatta entry, federation fee) delivered to a member on a date.
// Cost is the fixed fee in cents; a zero cost is a valid uncosted service.
type Service struct {
	ID          uint      `gorm:"primaryKey" json:"id_prestazione"`
	Name        string    `gorm:"column:nome;size:100;not null" json:"nome"`
	Description string    `gorm:"column:descrizione;size:500" json:"descrizione"`
	Cost        int64     `gorm:"column:costo;default:0" json:"-"` // cents
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Deliveries []Delivery `gorm:"foreignKey:ServiceID" json:"-"`
}

// MarshalJSON converts the cents cost to a decimal for API responses
func (s Service) MarshalJSON() ([]byte, error) {
	type Alias Service
	return json.Marshal(&struct {
		Alias
		Cost float64 `json:"costo"`
	}{
		Alias: Alias(s),
		Cost:  float64(s.Cost) / 100,
	})
}

// TableName returns the table name for the Service model
func (Service) TableName() string {
	return "prestazioni"
}
