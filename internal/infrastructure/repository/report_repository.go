package repository

import (
	"context"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	domainRepo "github.com/umamiasd/umami-api/internal/domain/repository"
	"gorm.io/gorm"
)

type reportRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReportRepository creates the repository backing the report endpoints
func NewReportRepository(db *gorm.DB) domainRepo.ReportRepository {
	return &reportRepository{db: db, now: time.Now}
}

// DelinquentMembers collects receivable invoices past their due date and
// still unpaid, then groups them per member. Ceased members are always
// excluded; suspended ones only on request.
func (r *reportRepository) DelinquentMembers(ctx context.Context, params *domainRepo.DelinquentFilterParams) (*domainRepo.DelinquentReport, error) {
	today := r.now().Truncate(24 * time.Hour)
	cutoff := today.AddDate(0, 0, -params.MinOverdueDays)

	statuses := []enum.MemberStatus{enum.MemberStatusActive}
	if params.IncludeSuspended {
		statuses = append(statuses, enum.MemberStatusSuspended)
	}

	var invoices []entity.Invoice
	query := r.db.WithContext(ctx).
		Preload("Member").
		Joins("JOIN associati ON associati.id = fatture.fk_associato").
		Where("fatture.tipo_fattura = ?", enum.InvoiceDirectionReceivable).
		Where("fatture.stato IN ?", []enum.InvoiceStatus{enum.InvoiceStatusIssued, enum.InvoiceStatusOverdue}).
		Where("fatture.data_scadenza < ?", cutoff).
		Where("associati.stato_associato IN ?", statuses).
		Order("fatture.fk_associato ASC, fatture.data_scadenza ASC")
	if params.MinAmount > 0 {
		query = query.Where("fatture.importo_totale >= ?", params.MinAmount)
	}
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}

	report := &domainRepo.DelinquentReport{Results: []domainRepo.DelinquentMember{}}
	byMember := map[uint]int{}

	for _, inv := range invoices {
		if inv.MemberID == nil || inv.Member == nil {
			continue
		}
		idx, ok := byMember[*inv.MemberID]
		if !ok {
			m := inv.Member
			report.Results = append(report.Results, domainRepo.DelinquentMember{
				MemberID:       m.ID,
				FirstName:      m.FirstName,
				LastName:       m.LastName,
				Email:          m.Email,
				Phone:          m.Phone,
				Status:         m.Status.String(),
				UnpaidInvoices: []domainRepo.UnpaidInvoice{},
			})
			idx = len(report.Results) - 1
			byMember[*inv.MemberID] = idx
		}

		overdueDays := int(today.Sub(inv.DueDate).Hours() / 24)
		report.Results[idx].UnpaidInvoices = append(report.Results[idx].UnpaidInvoices, domainRepo.UnpaidInvoice{
			InvoiceID:   inv.ID,
			Number:      inv.Number,
			IssueDate:   inv.IssueDate,
			DueDate:     inv.DueDate,
			TotalAmount: float64(inv.TotalAmount) / 100,
			OverdueDays: overdueDays,
			Status:      inv.EffectiveStatus(r.now()).String(),
		})
		report.Results[idx].TotalDue += float64(inv.TotalAmount) / 100
		report.TotalCredit += float64(inv.TotalAmount) / 100
	}

	report.Count = len(report.Results)
	return report, nil
}

func (r *reportRepository) FIVMembers(ctx context.Context, expired *bool) ([]domainRepo.FIVMemberRow, error) {
	today := r.now().Truncate(24 * time.Hour)

	var cards []entity.FIVMembership
	query := r.db.WithContext(ctx).Preload("Member")
	if expired != nil {
		if *expired {
			query = query.Where("scadenza_tesseramento_fiv < ?", today)
		} else {
			query = query.Where("scadenza_tesseramento_fiv >= ?", today)
		}
	}
	if err := query.Order("scadenza_tesseramento_fiv ASC").Find(&cards).Error; err != nil {
		return nil, err
	}

	rows := make([]domainRepo.FIVMemberRow, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, domainRepo.FIVMemberRow{Member: card.Member, Card: card})
	}
	return rows, nil
}

func (r *reportRepository) ExpiringCertificates(ctx context.Context, withinDays int) ([]domainRepo.FIVMemberRow, error) {
	today := r.now().Truncate(24 * time.Hour)
	horizon := today.AddDate(0, 0, withinDays)

	var cards []entity.FIVMembership
	err := r.db.WithContext(ctx).Preload("Member").
		Where("scadenza_certificato_medico >= ? AND scadenza_certificato_medico <= ?", today, horizon).
		Order("scadenza_certificato_medico ASC").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}

	rows := make([]domainRepo.FIVMemberRow, 0, len(cards))
	for _, card := range cards {
		rows = append(rows, domainRepo.FIVMemberRow{Member: card.Member, Card: card})
	}
	return rows, nil
}
