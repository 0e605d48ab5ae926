package repository

import (
	"context"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/entity"
)

// DelinquentFilterParams represents filtering options for the soci morosi report
type DelinquentFilterParams struct {
	// MinOverdueDays keeps only invoices overdue by at least this many days
	MinOverdueDays int
	// MinAmount keeps only invoices of at least this amount, in cents
	MinAmount int64
	// IncludeSuspended also reports members in stato Sospeso
	IncludeSuspended bool
}

// UnpaidInvoice is one open receivable of a delinquent member
type UnpaidInvoice struct {
	InvoiceID   uint      `json:"id_fattura"`
	Number      string    `json:"numero_fattura"`
	IssueDate   time.Time `json:"data_emissione"`
	DueDate     time.Time `json:"data_scadenza"`
	TotalAmount float64   `json:"importo_totale"`
	OverdueDays int       `json:"giorni_scadenza"`
	Status      string    `json:"stato"`
}

// DelinquentMember groups a member's unpaid invoices with the amount due
type DelinquentMember struct {
	MemberID       uint            `json:"id_associato"`
	FirstName      string          `json:"nome"`
	LastName       string          `json:"cognome"`
	Email          string          `json:"email"`
	Phone          string          `json:"telefono"`
	Status         string          `json:"stato_associato"`
	UnpaidInvoices []UnpaidInvoice `json:"fatture_non_pagate"`
	TotalDue       float64         `json:"totale_dovuto"`
}

// DelinquentReport is the soci morosi report payload
type DelinquentReport struct {
	Count       int                `json:"count"`
	TotalCredit float64            `json:"totale_crediti"`
	Results     []DelinquentMember `json:"results"`
}

// FIVMemberRow is a member joined with their federation card
type FIVMemberRow struct {
	Member entity.Member        `json:"associato"`
	Card   entity.FIVMembership `json:"tessera_fiv"`
}

// ReportRepository defines the read-only aggregation queries backing the
// report endpoints
type ReportRepository interface {
	// DelinquentMembers reports members with open (Emessa or overdue)
	// receivable invoices, grouped per member
	DelinquentMembers(ctx context.Context, params *DelinquentFilterParams) (*DelinquentReport, error)
	// FIVMembers lists members holding a federation card. expired filters
	// on card expiry when non-nil (true: lapsed, false: current).
	FIVMembers(ctx context.Context, expired *bool) ([]FIVMemberRow, error)
	// ExpiringCertificates lists cards whose medical certificate expires
	// within the given number of days
	ExpiringCertificates(ctx context.Context, withinDays int) ([]FIVMemberRow, error)
}
