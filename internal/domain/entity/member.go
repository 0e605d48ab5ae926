package entity

import (
	"encoding/json"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/enum"
)

// Member represents an associato of the club. A member may reference a head
// of household (capofamiglia) used for family billing groupings.
type Member struct {
	ID                uint              `gorm:"primaryKey" json:"id_associato"`
	HeadOfHouseholdID *uint             `gorm:"column:fk_associato_riferimento;index" json:"fk_associato_riferimento,omitempty"`
	FirstName         string            `gorm:"column:nome;size:50;not null" json:"nome"`
	LastName          string            `gorm:"column:cognome;size:50;not null" json:"cognome"`
	FiscalCode        string            `gorm:"column:codice_fiscale;size:16;uniqueIndex;not null" json:"codice_fiscale"`
	BirthDate         time.Time         `gorm:"column:data_nascita;type:date;not null" json:"data_nascita"`
	Address           string            `gorm:"column:indirizzo;size:200;not null" json:"indirizzo"`
	Email             string            `gorm:"column:email;size:255;not null" json:"email"`
	Phone             string            `gorm:"column:telefono;size:20;not null" json:"telefono"`
	EnrollmentDate    time.Time         `gorm:"column:data_iscrizione;type:date;not null" json:"data_iscrizione"`
	Status            enum.MemberStatus `gorm:"column:stato_associato;size:20;default:'Attivo'" json:"stato_associato"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`

	// Relationships
	HeadOfHousehold *Member        `gorm:"foreignKey:HeadOfHouseholdID" json:"-"`
	FIVMembership   *FIVMembership `gorm:"foreignKey:MemberID" json:"tessera_fiv,omitempty"`
	AccessKey       *AccessKey     `gorm:"foreignKey:MemberID" json:"-"`
	Assignments     []Assignment   `gorm:"foreignKey:MemberID" json:"-"`
	Invoices        []Invoice      `gorm:"foreignKey:MemberID" json:"-"`
}

// TableName returns the table name for the Member model
func (Member) TableName() string {
	return "associati"
}

// FIVMembership is the Italian Sailing Federation card of a member,
// at most one per member (upsert semantics).
type FIVMembership struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	MemberID          uint      `gorm:"column:fk_associato;uniqueIndex;not null" json:"fk_associato"`
	CardNumber        string    `gorm:"column:numero_tessera_fiv;size:20;not null" json:"numero_tessera_fiv"`
	MembershipExpiry  time.Time `gorm:"column:scadenza_tesseramento_fiv;type:date;not null" json:"scadenza_tesseramento_fiv"`
	MedicalCertExpiry time.Time `gorm:"column:scadenza_certificato_medico;type:date;not null" json:"scadenza_certificato_medico"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

// TableName returns the table name for the FIVMembership model
func (FIVMembership) TableName() string {
	return "tessere_fiv"
}

// IsExpired reports whether the federation membership has lapsed
func (m *FIVMembership) IsExpired(now time.Time) bool {
	return m.MembershipExpiry.Before(now.Truncate(24 * time.Hour))
}

// AccessKey is the electronic key assigned to a member; it carries a
// shower credit balance stored in cents.
type AccessKey struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	MemberID       uint      `gorm:"column:fk_associato;uniqueIndex;not null" json:"fk_associato"`
	KeyCode        string    `gorm:"column:key_code;size:50;not null" json:"key_code"`
	InGoodStanding bool      `gorm:"column:in_regola;default:true" json:"in_regola"`
	Credit         int64     `gorm:"column:credito;default:0" json:"-"` // cents
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Member Member `gorm:"foreignKey:MemberID" json:"-"`
}

// MarshalJSON converts the cents balance to a decimal for API responses
func (k AccessKey) MarshalJSON() ([]byte, error) {
	type Alias AccessKey
	return json.Marshal(&struct {
		Alias
		Credit float64 `json:"credito"`
	}{
		Alias:  Alias(k),
		Credit: float64(k.Credit) / 100,
	})
}

// TableName returns the table name for the AccessKey model
func (AccessKey) TableName() string {
	return "chiavi_elettroniche"
}
