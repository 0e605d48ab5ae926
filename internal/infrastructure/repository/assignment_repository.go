package repository

import (
	"context"
	"errors"
	"time"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	domainRepo "github.com/umamiasd/umami-api/internal/domain/repository"
	"gorm.io/gorm"
)

type assignmentRepository struct {
	db *gorm.DB
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *gorm.DB) domainRepo.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) GetByID(ctx context.Context, id uint) (*entity.Assignment, error) {
	var assignment entity.Assignment
	err := r.db.WithContext(ctx).First(&assignment, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &assignment, err
}

func (r *assignmentRepository) FindActiveOverlap(ctx context.Context, assetID uint, start, end time.Time) ([]entity.Assignment, error) {
	return findActiveOverlap(r.db.WithContext(ctx), assetID, start, end)
}

func (r *assignmentRepository) ListByMember(ctx context.Context, memberID uint) ([]entity.Assignment, error) {
	var assignments []entity.Assignment
	err := r.db.WithContext(ctx).
		Where("fk_associato = ?", memberID).
		Order("data_inizio DESC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&entity.Assignment{}).
		Where("id = ?", id).
		Update("stato", status).Error
}

// findActiveOverlap is shared with the billing workflow, which runs the
// same query inside its transaction
func findActiveOverlap(tx *gorm.DB, assetID uint, start, end time.Time) ([]entity.Assignment, error) {
	var assignments []entity.Assignment
	err := tx.
		Where("fk_servizio_fisico = ? AND stato = ?", assetID, enum.AssignmentStatusActive).
		Where("data_inizio <= ? AND data_fine >= ?", end, start).
		Find(&assignments).Error
	return assignments, err
}

type deliveryRepository struct {
	db *gorm.DB
}

// NewDeliveryRepository creates a new service delivery repository
func NewDeliveryRepository(db *gorm.DB) domainRepo.DeliveryRepository {
	return &deliveryRepository{db: db}
}

func (r *deliveryRepository) GetByID(ctx context.Context, id uint) (*entity.Delivery, error) {
	var delivery entity.Delivery
	err := r.db.WithContext(ctx).First(&delivery, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &delivery, err
}

func (r *deliveryRepository) ListByMember(ctx context.Context, memberID uint) ([]entity.Delivery, error) {
	var deliveries []entity.Delivery
	err := r.db.WithContext(ctx).
		Where("fk_associato = ?", memberID).
		Order("data_erogazione DESC").
		Find(&deliveries).Error
	return deliveries, err
}
