package service

import (
	"context"
	"strings"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	"github.com/umamiasd/umami-api/internal/domain/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"github.com/umamiasd/umami-api/pkg/pagination"
	"github.com/umamiasd/umami-api/pkg/utils"
)

// MemberService handles the member registry, federation cards and
// electronic keys
type MemberService struct {
	memberRepo    repository.MemberRepository
	fivRepo       repository.FIVMembershipRepository
	accessKeyRepo repository.AccessKeyRepository
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo repository.MemberRepository,
	fivRepo repository.FIVMembershipRepository,
	accessKeyRepo repository.AccessKeyRepository,
) *MemberService {
	return &MemberService{
		memberRepo:    memberRepo,
		fivRepo:       fivRepo,
		accessKeyRepo: accessKeyRepo,
	}
}

// CreateMemberInput represents the create member input
type CreateMemberInput struct {
	FirstName         string `json:"nome" binding:"required"`
	LastName          string `json:"cognome" binding:"required"`
	FiscalCode        string `json:"codice_fiscale" binding:"required,len=16"`
	BirthDate         string `json:"data_nascita" binding:"required"`
	Address           string `json:"indirizzo" binding:"required"`
	Email             string `json:"email" binding:"required,email"`
	Phone             string `json:"telefono" binding:"required"`
	EnrollmentDate    string `json:"data_iscrizione"`
	Status            string `json:"stato_associato"`
	HeadOfHouseholdID *uint  `json:"fk_associato_riferimento"`
}

// CreateMember registers a new associato. The fiscal code must be unique
// and the referenced head of household, when given, must exist.
func (s *MemberService) CreateMember(ctx context.Context, input *CreateMemberInput) (*entity.Member, error) {
	fiscalCode := strings.ToUpper(strings.TrimSpace(input.FiscalCode))

	existing, err := s.memberRepo.GetByFiscalCode(ctx, fiscalCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Esiste già un associato con questo codice fiscale")
	}

	birthDate, err := utils.ParseDate(input.BirthDate)
	if err != nil {
		return nil, apperror.NewBadRequestError("Data di nascita non valida (atteso formato YYYY-MM-DD)")
	}

	enrollmentDate := time.Now().Truncate(24 * time.Hour)
	if input.EnrollmentDate != "" {
		enrollmentDate, err = utils.ParseDate(input.EnrollmentDate)
		if err != nil {
			return nil, apperror.NewBadRequestError("Data di iscrizione non valida (atteso formato YYYY-MM-DD)")
		}
	}

	status := enum.MemberStatusActive
	if input.Status != "" {
		status = enum.MemberStatus(input.Status)
		if !status.IsValid() {
			return nil, apperror.NewBadRequestError("Stato associato non valido")
		}
	}

	if input.HeadOfHouseholdID != nil {
		head, err := s.memberRepo.GetByID(ctx, *input.HeadOfHouseholdID)
		if err != nil {
			return nil, err
		}
		if head == nil {
			return nil, apperror.NewNotFoundError("Associato di riferimento")
		}
	}

	member := &entity.Member{
		FirstName:         input.FirstName,
		LastName:          input.LastName,
		FiscalCode:        fiscalCode,
		BirthDate:         birthDate,
		Address:           input.Address,
		Email:             input.Email,
		Phone:             input.Phone,
		EnrollmentDate:    enrollmentDate,
		Status:            status,
		HeadOfHouseholdID: input.HeadOfHouseholdID,
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// GetMember retrieves a member by ID with card and key preloaded
func (s *MemberService) GetMember(ctx context.Context, id uint) (*entity.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Associato")
	}
	return member, nil
}

// ListMembersInput represents the member listing filters
type ListMembersInput struct {
	Pagination pagination.Params
	Search     string
	Status     string
	HasFIVCard *bool
}

// ListMembers lists members with search and status filters
func (s *MemberService) ListMembers(ctx context.Context, input *ListMembersInput) (*pagination.ListResult[entity.Member], error) {
	if input.Status != "" && !enum.MemberStatus(input.Status).IsValid() {
		return nil, apperror.NewBadRequestError("Stato associato non valido")
	}

	params := &repository.MemberFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     enum.MemberStatus(input.Status),
		HasFIVCard: input.HasFIVCard,
	}
	members, total, err := s.memberRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return pagination.NewListResult(members, total), nil
}

// UpdateMemberInput represents the update member input; nil fields are
// left untouched
type UpdateMemberInput struct {
	FirstName         *string `json:"nome"`
	LastName          *string `json:"cognome"`
	Address           *string `json:"indirizzo"`
	Email             *string `json:"email"`
	Phone             *string `json:"telefono"`
	Status            *string `json:"stato_associato"`
	HeadOfHouseholdID *uint   `json:"fk_associato_riferimento"`
}

// UpdateMember applies a partial update to a member. The fiscal code and
// birth date are immutable registry data.
func (s *MemberService) UpdateMember(ctx context.Context, id uint, input *UpdateMemberInput) (*entity.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Associato")
	}

	if input.FirstName != nil {
		member.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		member.LastName = *input.LastName
	}
	if input.Address != nil {
		member.Address = *input.Address
	}
	if input.Email != nil {
		member.Email = *input.Email
	}
	if input.Phone != nil {
		member.Phone = *input.Phone
	}
	if input.Status != nil {
		status := enum.MemberStatus(*input.Status)
		if !status.IsValid() {
			return nil, apperror.NewBadRequestError("Stato associato non valido")
		}
		member.Status = status
	}
	if input.HeadOfHouseholdID != nil {
		if *input.HeadOfHouseholdID == id {
			return nil, apperror.NewBadRequestError("Un associato non può essere riferimento di sé stesso")
		}
		head, err := s.memberRepo.GetByID(ctx, *input.HeadOfHouseholdID)
		if err != nil {
			return nil, err
		}
		if head == nil {
			return nil, apperror.NewNotFoundError("Associato di riferimento")
		}
		member.HeadOfHouseholdID = input.HeadOfHouseholdID
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// UpsertFIVCardInput represents the federation card upsert input
type UpsertFIVCardInput struct {
	CardNumber        string `json:"numero_tessera_fiv" binding:"required"`
	MembershipExpiry  string `json:"scadenza_tesseramento_fiv" binding:"required"`
	MedicalCertExpiry string `json:"scadenza_certificato_medico" binding:"required"`
}

// UpsertFIVCard creates or replaces the member's federation card
func (s *MemberService) UpsertFIVCard(ctx context.Context, memberID uint, input *UpsertFIVCardInput) (*entity.FIVMembership, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Associato")
	}

	membershipExpiry, err := utils.ParseDate(input.MembershipExpiry)
	if err != nil {
		return nil, apperror.NewBadRequestError("Scadenza tesseramento non valida (atteso formato YYYY-MM-DD)")
	}
	medicalExpiry, err := utils.ParseDate(input.MedicalCertExpiry)
	if err != nil {
		return nil, apperror.NewBadRequestError("Scadenza certificato medico non valida (atteso formato YYYY-MM-DD)")
	}

	card := &entity.FIVMembership{
		MemberID:          memberID,
		CardNumber:        input.CardNumber,
		MembershipExpiry:  membershipExpiry,
		MedicalCertExpiry: medicalExpiry,
	}
	if err := s.fivRepo.Upsert(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// UpsertAccessKeyInput represents the electronic key upsert input
type UpsertAccessKeyInput struct {
	KeyCode        string `json:"key_code" binding:"required"`
	InGoodStanding *bool  `json:"in_regola"`
}

// UpsertAccessKey creates or replaces the member's electronic key
func (s *MemberService) UpsertAccessKey(ctx context.Context, memberID uint, input *UpsertAccessKeyInput) (*entity.AccessKey, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Associato")
	}

	inGoodStanding := true
	if input.InGoodStanding != nil {
		inGoodStanding = *input.InGoodStanding
	}

	key := &entity.AccessKey{
		MemberID:       memberID,
		KeyCode:        input.KeyCode,
		InGoodStanding: inGoodStanding,
	}
	if err := s.accessKeyRepo.Upsert(ctx, key); err != nil {
		return nil, err
	}
	return key, nil
}

// RechargeCreditInput represents the shower credit recharge input
type RechargeCreditInput struct {
	Amount float64 `json:"importo" binding:"required"`
}

// RechargeCredit adds the given amount to the member's key credit balance
func (s *MemberService) RechargeCredit(ctx context.Context, memberID uint, input *RechargeCreditInput) (*entity.AccessKey, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("L'importo della ricarica deve essere positivo")
	}

	key, err := s.accessKeyRepo.GetByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if key == nil {
		return nil, apperror.NewNotFoundError("Chiave elettronica")
	}

	if err := s.accessKeyRepo.AddCredit(ctx, memberID, utils.CentsFromFloat(input.Amount)); err != nil {
		return nil, err
	}
	return s.accessKeyRepo.GetByMember(ctx, memberID)
}
