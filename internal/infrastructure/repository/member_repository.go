package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	domainRepo "github.com/umamiasd/umami-api/internal/domain/repository"
	"gorm.io/gorm"
)

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) domainRepo.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *memberRepository) GetByID(ctx context.Context, id uint) (*entity.Member, error) {
	var member entity.Member
	err := r.db.WithContext(ctx).
		Preload("FIVMembership").
		Preload("AccessKey").
		First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *memberRepository) GetByFiscalCode(ctx context.Context, fiscalCode string) (*entity.Member, error) {
	var member entity.Member
	err := r.db.WithContext(ctx).
		First(&member, "codice_fiscale = ?", strings.ToUpper(fiscalCode)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *memberRepository) Update(ctx context.Context, member *entity.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) List(ctx context.Context, params *domainRepo.MemberFilterParams) ([]entity.Member, int64, error) {
	var members []entity.Member
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Member{})

	if params.Search != "" {
		pattern := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(nome) LIKE ? OR LOWER(cognome) LIKE ? OR LOWER(email) LIKE ? OR LOWER(codice_fiscale) LIKE ?",
			pattern, pattern, pattern, pattern)
	}

	if params.Status != "" {
		query = query.Where("stato_associato = ?", params.Status)
	}

	if params.HasFIVCard != nil {
		sub := r.db.Model(&entity.FIVMembership{}).Select("fk_associato")
		if *params.HasFIVCard {
			query = query.Where("id IN (?)", sub)
		} else {
			query = query.Where("id NOT IN (?)", sub)
		}
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Preload("FIVMembership").
		Offset(params.Pagination.Offset).Limit(params.Pagination.Limit).
		Order("cognome ASC, nome ASC").
		Find(&members).Error

	return members, total, err
}

type fivMembershipRepository struct {
	db *gorm.DB
}

// NewFIVMembershipRepository creates a new federation card repository
func NewFIVMembershipRepository(db *gorm.DB) domainRepo.FIVMembershipRepository {
	return &fivMembershipRepository{db: db}
}

func (r *fivMembershipRepository) GetByMember(ctx context.Context, memberID uint) (*entity.FIVMembership, error) {
	var card entity.FIVMembership
	err := r.db.WithContext(ctx).First(&card, "fk_associato = ?", memberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &card, err
}

func (r *fivMembershipRepository) Upsert(ctx context.Context, card *entity.FIVMembership) error {
	var existing entity.FIVMembership
	err := r.db.WithContext(ctx).First(&existing, "fk_associato = ?", card.MemberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(card).Error
	}
	if err != nil {
		return err
	}

	existing.CardNumber = card.CardNumber
	existing.MembershipExpiry = card.MembershipExpiry
	existing.MedicalCertExpiry = card.MedicalCertExpiry
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*card = existing
	return nil
}

type accessKeyRepository struct {
	db *gorm.DB
}

// NewAccessKeyRepository creates a new electronic key repository
func NewAccessKeyRepository(db *gorm.DB) domainRepo.AccessKeyRepository {
	return &accessKeyRepository{db: db}
}

func (r *accessKeyRepository) GetByMember(ctx context.Context, memberID uint) (*entity.AccessKey, error) {
	var key entity.AccessKey
	err := r.db.WithContext(ctx).First(&key, "fk_associato = ?", memberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &key, err
}

func (r *accessKeyRepository) Upsert(ctx context.Context, key *entity.AccessKey) error {
	var existing entity.AccessKey
	err := r.db.WithContext(ctx).First(&existing, "fk_associato = ?", key.MemberID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(key).Error
	}
	if err != nil {
		return err
	}

	existing.KeyCode = key.KeyCode
	existing.InGoodStanding = key.InGoodStanding
	if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return err
	}
	*key = existing
	return nil
}

func (r *accessKeyRepository) AddCredit(ctx context.Context, memberID uint, amount int64) error {
	result := r.db.WithContext(ctx).Model(&entity.AccessKey{}).
		Where("fk_associato = ?", memberID).
		UpdateColumn("credito", gorm.Expr("credito + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
