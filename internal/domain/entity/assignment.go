package entity

import (
	"time"

	"github.com/umamiasd/umami-api/internal/domain/enum"
)

// Assignment links a member to a physical asset for a date range within a
// fiscal year. Records are never hard-deleted; the lifecycle is tracked
// through Status.
type Assignment struct {
	ID         uint                  `gorm:"primaryKey" json:"id_assegnazione"`
	MemberID   uint                  `gorm:"column:fk_associato;not null;index" json:"fk_associato"`
	AssetID    uint                  `gorm:"column:fk_servizio_fisico;not null;index" json:"fk_servizio_fisico"`
	FiscalYear int                   `gorm:"column:anno_gestione;not null" json:"anno_gestione"`
	StartDate  time.Time             `gorm:"column:data_inizio;type:date;not null" json:"data_inizio"`
	EndDate    time.Time             `gorm:"column:data_fine;type:date;not null" json:"data_fine"`
	Status     enum.AssignmentStatus `gorm:"column:stato;size:20;default:'Attivo'" json:"stato"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`

	// Relationships
	Member Member `gorm:"foreignKey:MemberID" json:"-"`
	Asset  Asset  `gorm:"foreignKey:AssetID" json:"-"`
}

// TableName returns the table name for the Assignment model
func (Assignment) TableName() string {
	return "assegnazioni_servizi_fisici"
}

// Overlaps reports whether the assignment's date range intersects the
// given inclusive range
func (a *Assignment) Overlaps(start, end time.Time) bool {
	return !a.StartDate.After(end) && !start.After(a.EndDate)
}

// Delivery links a member to a service delivered on a specific date
// (erogazione di una prestazione).
type Delivery struct {
	ID          uint      `gorm:"primaryKey" json:"id_erogazione"`
	MemberID    uint      `gorm:"column:fk_associato;not null;index" json:"fk_associato"`
	ServiceID   uint      `gorm:"column:fk_prestazione;not null;index" json:"fk_prestazione"`
	DeliveredAt time.Time `gorm:"column:data_erogazione;not null" json:"data_erogazione"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Member  Member  `gorm:"foreignKey:MemberID" json:"-"`
	Service Service `gorm:"foreignKey:ServiceID" json:"-"`
}

// TableName returns the table name for the Delivery model
func (Delivery) TableName() string {
	return "erogazioni_prestazioni"
}
