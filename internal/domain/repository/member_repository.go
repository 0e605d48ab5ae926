package repository

import (
	"context"

	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	"github.com/umamiasd/umami-api/pkg/pagination"
)

// MemberFilterParams represents filtering options for member listing
type MemberFilterParams struct {
	Pagination pagination.Params
	// Search matches nome, cognome, email and codice fiscale
	Search string
	Status enum.MemberStatus
	// HasFIVCard filters on the presence of a federation card when non-nil
	HasFIVCard *bool
}

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	GetByID(ctx context.Context, id uint) (*entity.Member, error)
	GetByFiscalCode(ctx context.Context, fiscalCode string) (*entity.Member, error)
	Update(ctx context.Context, member *entity.Member) error
	List(ctx context.Context, params *MemberFilterParams) ([]entity.Member, int64, error)
}

// FIVMembershipRepository defines the interface for federation card operations
type FIVMembershipRepository interface {
	GetByMember(ctx context.Context, memberID uint) (*entity.FIVMembership, error)
	// Upsert creates the member's card or replaces its fields if one exists
	Upsert(ctx context.Context, card *entity.FIVMembership) error
}

// AccessKeyRepository defines the interface for electronic key operations
type AccessKeyRepository interface {
	GetByMember(ctx context.Context, memberID uint) (*entity.AccessKey, error)
	// Upsert creates the member's key or replaces code and standing if one exists
	Upsert(ctx context.Context, key *entity.AccessKey) error
	// AddCredit atomically increments the shower credit balance (cents)
	AddCredit(ctx context.Context, memberID uint, amount int64) error
}
