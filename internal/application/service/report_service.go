package service

import (
	"context"
	"log"

	"github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"github.com/umamiasd/umami-api/pkg/email"
)

// ReportService exposes the management reports and the payment reminder
// dispatch built on top of them
type ReportService struct {
	reportRepo   repository.ReportRepository
	emailService *email.EmailService
}

// NewReportService creates a new report service
func NewReportService(reportRepo repository.ReportRepository, emailService *email.EmailService) *ReportService {
	return &ReportService{reportRepo: reportRepo, emailService: emailService}
}

// DelinquentMembersInput represents the soci morosi report filters
type DelinquentMembersInput struct {
	MinOverdueDays   int
	MinAmount        float64
	IncludeSuspended bool
}

// DelinquentMembers returns members with overdue receivable invoices
func (s *ReportService) DelinquentMembers(ctx context.Context, input *DelinquentMembersInput) (*repository.DelinquentReport, error) {
	if input.MinOverdueDays < 0 {
		return nil, apperror.NewBadRequestError("I giorni di ritardo minimi non possono essere negativi")
	}
	return s.reportRepo.DelinquentMembers(ctx, &repository.DelinquentFilterParams{
		MinOverdueDays:   input.MinOverdueDays,
		MinAmount:        int64(input.MinAmount * 100),
		IncludeSuspended: input.IncludeSuspended,
	})
}

// FIVMembers returns members holding a federation card, optionally
// filtered on card expiry
func (s *ReportService) FIVMembers(ctx context.Context, expired *bool) ([]repository.FIVMemberRow, error) {
	return s.reportRepo.FIVMembers(ctx, expired)
}

// ExpiringCertificates returns cards whose medical certificate expires
// within the given horizon (default 30 days)
func (s *ReportService) ExpiringCertificates(ctx context.Context, withinDays int) ([]repository.FIVMemberRow, error) {
	if withinDays <= 0 {
		withinDays = 30
	}
	return s.reportRepo.ExpiringCertificates(ctx, withinDays)
}

// ReminderDispatchResult summarizes a payment reminder run
type ReminderDispatchResult struct {
	MembersNotified int      `json:"associati_notificati"`
	Failed          []string `json:"invii_falliti,omitempty"`
}

// SendPaymentReminders emails every delinquent member a reminder listing
// their open invoices. Send failures are collected, not fatal: one bad
// address must not block the rest of the run.
func (s *ReportService) SendPaymentReminders(ctx context.Context, input *DelinquentMembersInput) (*ReminderDispatchResult, error) {
	report, err := s.DelinquentMembers(ctx, input)
	if err != nil {
		return nil, err
	}

	result := &ReminderDispatchResult{}
	for _, member := range report.Results {
		if member.Email == "" {
			continue
		}

		invoices := make([]email.ReminderInvoice, 0, len(member.UnpaidInvoices))
		for _, inv := range member.UnpaidInvoices {
			invoices = append(invoices, email.ReminderInvoice{
				Number:      inv.Number,
				DueDate:     inv.DueDate.Format("02/01/2006"),
				TotalAmount: inv.TotalAmount,
				OverdueDays: inv.OverdueDays,
			})
		}

		data := email.ReminderData{
			MemberName: member.FirstName + " " + member.LastName,
			Invoices:   invoices,
			TotalDue:   member.TotalDue,
		}
		if err := s.emailService.SendPaymentReminder(member.Email, data); err != nil {
			log.Printf("Failed to send payment reminder to %s: %v", member.Email, err)
			result.Failed = append(result.Failed, member.Email)
			continue
		}
		result.MembersNotified++
	}
	return result, nil
}
