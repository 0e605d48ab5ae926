package service

import (
	"context"
	"fmt"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	"github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"github.com/umamiasd/umami-api/pkg/utils"
)

// BillingService orchestrates the invoice-generation workflows: assigning
// a physical asset or delivering a prestazione, each producing its invoice
// atomically.
type BillingService struct {
	billingRepo    repository.BillingRepository
	memberRepo     repository.MemberRepository
	assetRepo      repository.AssetRepository
	priceRepo      repository.AssetPriceRepository
	serviceRepo    repository.ServiceRepository
	assignmentRepo repository.AssignmentRepository
	deliveryRepo   repository.DeliveryRepository
	now            func() time.Time
}

// NewBillingService creates a new billing service
func NewBillingService(
	billingRepo repository.BillingRepository,
	memberRepo repository.MemberRepository,
	assetRepo repository.AssetRepository,
	priceRepo repository.AssetPriceRepository,
	serviceRepo repository.ServiceRepository,
	assignmentRepo repository.AssignmentRepository,
	deliveryRepo repository.DeliveryRepository,
) *BillingService {
	return &BillingService{
		billingRepo:    billingRepo,
		memberRepo:     memberRepo,
		assetRepo:      assetRepo,
		priceRepo:      priceRepo,
		serviceRepo:    serviceRepo,
		assignmentRepo: assignmentRepo,
		deliveryRepo:   deliveryRepo,
		now:            time.Now,
	}
}

// AssignAssetInput represents the asset assignment request
type AssignAssetInput struct {
	MemberID   uint   `json:"fk_associato" binding:"required"`
	AssetID    uint   `json:"fk_servizio_fisico" binding:"required"`
	FiscalYear int    `json:"anno_gestione"`
	StartDate  string `json:"data_inizio" binding:"required"`
	EndDate    string `json:"data_fine" binding:"required"`
}

// AssignAsset assigns a physical asset to a member and issues the yearly
// fee invoice. An occupied asset only conflicts when the requested period
// overlaps an active assignment; validations run fail-fast before the
// transaction and the overlap check is repeated inside it under the row
// lock.
func (s *BillingService) AssignAsset(ctx context.Context, input *AssignAssetInput) (*repository.BillingResult, error) {
	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Associato")
	}
	if member.Status == enum.MemberStatusCeased {
		return nil, apperror.NewBadRequestError("Non è possibile assegnare servizi a un associato cessato")
	}

	asset, err := s.assetRepo.GetByID(ctx, input.AssetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, apperror.NewNotFoundError("Servizio fisico")
	}

	startDate, err := utils.ParseDate(input.StartDate)
	if err != nil {
		return nil, apperror.NewBadRequestError("Data di inizio non valida (atteso formato YYYY-MM-DD)")
	}
	endDate, err := utils.ParseDate(input.EndDate)
	if err != nil {
		return nil, apperror.NewBadRequestError("Data di fine non valida (atteso formato YYYY-MM-DD)")
	}
	if endDate.Before(startDate) {
		return nil, apperror.NewBadRequestError("La data di fine precede la data di inizio")
	}

	fiscalYear := input.FiscalYear
	if fiscalYear == 0 {
		fiscalYear = startDate.Year()
	}

	// Fail fast on an obvious overlap before opening the transaction;
	// the authoritative check runs again under the lock.
	overlapping, err := s.assignmentRepo.FindActiveOverlap(ctx, input.AssetID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	if len(overlapping) > 0 {
		return nil, apperror.NewConflictError("Il servizio fisico ha già un'assegnazione attiva nel periodo richiesto")
	}

	var unitPrice int64
	price, err := s.priceRepo.GetByAsset(ctx, input.AssetID)
	if err != nil {
		return nil, err
	}
	if price != nil {
		unitPrice = price.Price
	}

	return s.billingRepo.CreateAssetAssignment(ctx, &repository.AssetAssignmentInput{
		MemberID:        input.MemberID,
		AssetID:         input.AssetID,
		FiscalYear:      fiscalYear,
		StartDate:       startDate,
		EndDate:         endDate,
		UnitPrice:       unitPrice,
		LineDescription: fmt.Sprintf("Canone annuale %s (%s) - anno gestione %d", asset.Name, asset.Category, fiscalYear),
	})
}

// DeliverServiceInput represents the service delivery request
type DeliverServiceInput struct {
	MemberID    uint   `json:"fk_associato" binding:"required"`
	ServiceID   uint   `json:"fk_prestazione" binding:"required"`
	DeliveredAt string `json:"data_erogazione"`
}

// DeliverService records the delivery of a prestazione to a member and
// issues the invoice for its fixed cost. A zero-cost service still
// produces its zero-amount invoice.
func (s *BillingService) DeliverService(ctx context.Context, input *DeliverServiceInput) (*repository.BillingResult, error) {
	member, err := s.memberRepo.GetByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Associato")
	}
	if member.Status == enum.MemberStatusCeased {
		return nil, apperror.NewBadRequestError("Non è possibile erogare prestazioni a un associato cessato")
	}

	svc, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc == nil {
		return nil, apperror.NewNotFoundError("Prestazione")
	}

	deliveredAt := s.now()
	if input.DeliveredAt != "" {
		deliveredAt, err = utils.ParseFlexibleDate(input.DeliveredAt)
		if err != nil {
			return nil, apperror.NewBadRequestError("Data di erogazione non valida")
		}
	}

	return s.billingRepo.CreateServiceDelivery(ctx, &repository.ServiceDeliveryInput{
		MemberID:        input.MemberID,
		ServiceID:       input.ServiceID,
		DeliveredAt:     deliveredAt,
		UnitPrice:       svc.Cost,
		LineDescription: fmt.Sprintf("Erogazione prestazione %s del %s", svc.Name, deliveredAt.Format("02/01/2006")),
	})
}

// TerminateAssignment closes an active assignment and releases the asset
// back to Disponibile when no other active assignment holds it.
func (s *BillingService) TerminateAssignment(ctx context.Context, id uint) (*entity.Assignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, apperror.NewNotFoundError("Assegnazione")
	}
	if assignment.Status == enum.AssignmentStatusTerminated {
		return nil, apperror.NewConflictError("L'assegnazione è già terminata")
	}

	if err := s.assignmentRepo.UpdateStatus(ctx, id, string(enum.AssignmentStatusTerminated)); err != nil {
		return nil, err
	}
	assignment.Status = enum.AssignmentStatusTerminated

	remaining, err := s.assignmentRepo.FindActiveOverlap(ctx, assignment.AssetID, assignment.StartDate, assignment.EndDate)
	if err != nil {
		return nil, err
	}
	if len(remaining) == 0 {
		if err := s.assetRepo.UpdateStatus(ctx, assignment.AssetID, enum.AssetStatusAvailable); err != nil {
			return nil, err
		}
	}
	return assignment, nil
}

// ListMemberAssignments lists a member's assignments, newest first
func (s *BillingService) ListMemberAssignments(ctx context.Context, memberID uint) ([]entity.Assignment, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Associato")
	}
	return s.assignmentRepo.ListByMember(ctx, memberID)
}

// ListMemberDeliveries lists a member's service deliveries, newest first
func (s *BillingService) ListMemberDeliveries(ctx context.Context, memberID uint) ([]entity.Delivery, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Associato")
	}
	return s.deliveryRepo.ListByMember(ctx, memberID)
}
