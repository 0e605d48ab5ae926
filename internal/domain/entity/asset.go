package entity

import (
	"encoding/json"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/enum"
)

// Asset represents a servizio fisico: a physical resource such as a boat
// berth or a locker, assignable to one member at a time for a period.
type Asset struct {
	ID          uint             `gorm:"primaryKey" json:"id_servizio_fisico"`
	Name        string           `gorm:"column:nome;size:100;not null" json:"nome"`
	Description string           `gorm:"column:descrizione;size:500" json:"descrizione"`
	Category    string           `gorm:"column:categoria;size:50;not null;index" json:"categoria"`
	Status      enum.AssetStatus `gorm:"column:stato;size:20;default:'Disponibile'" json:"stato"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relationships
	Price       *AssetPrice  `gorm:"foreignKey:AssetID" json:"prezzo,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:AssetID" json:"-"`
}

// TableName returns the table name for the Asset model
func (Asset) TableName() string {
	return "servizi_fisici"
}

// AssetPrice is the current yearly fee for an asset, stored in cents.
// An asset without a price row is billed at zero.
type AssetPrice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AssetID   uint      `gorm:"column:fk_servizio_fisico;uniqueIndex;not null" json:"fk_servizio_fisico"`
	Price     int64     `gorm:"column:prezzo;not null" json:"-"` // cents
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Asset Asset `gorm:"foreignKey:AssetID" json:"-"`
}

// MarshalJSON converts the cents price to a decimal for API responses
func (p AssetPrice) MarshalJSON() ([]byte, error) {
	type Alias AssetPrice
	return json.Marshal(&struct {
		Alias
		Price float64 `json:"prezzo"`
	}{
		Alias: Alias(p),
		Price: float64(p.Price) / 100,
	})
}

// TableName returns the table name for the AssetPrice model
func (AssetPrice) TableName() string {
	return "prezzi_servizi"
}
