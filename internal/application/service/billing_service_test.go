package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umamiasd/umami-api/internal/domain/entity"
	"github.com/umamiasd/umami-api/internal/domain/enum"
	infraRepo "github.com/umamiasd/umami-api/internal/infrastructure/repository"
	"github.com/umamiasd/umami-api/pkg/apperror"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_fk=1", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Member{},
		&entity.FIVMembership{},
		&entity.AccessKey{},
		&entity.Supplier{},
		&entity.Asset{},
		&entity.AssetPrice{},
		&entity.Service{},
		&entity.Assignment{},
		&entity.Delivery{},
		&entity.Invoice{},
		&entity.InvoiceLine{},
		&entity.Payment{},
		&entity.IdempotencyKey{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	return db
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newBillingService(db *gorm.DB) *BillingService {
	return NewBillingService(
		infraRepo.NewBillingRepository(db),
		infraRepo.NewMemberRepository(db),
		infraRepo.NewAssetRepository(db),
		infraRepo.NewAssetPriceRepository(db),
		infraRepo.NewServiceRepository(db),
		infraRepo.NewAssignmentRepository(db),
		infraRepo.NewDeliveryRepository(db),
	)
}

func seedMember(t *testing.T, db *gorm.DB, fiscalCode string, status enum.MemberStatus) *entity.Member {
	t.Helper()
	member := &entity.Member{
		FirstName:      "Luca",
		LastName:       "Bianchi",
		FiscalCode:     fiscalCode,
		BirthDate:      date(1985, 3, 20),
		Address:        "Via Roma 5, Genova",
		Email:          "luca.bianchi@example.com",
		Phone:          "3489876543",
		EnrollmentDate: date(2021, 9, 1),
		Status:         status,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func seedAsset(t *testing.T, db *gorm.DB, name string, status enum.AssetStatus, price int64) *entity.Asset {
	t.Helper()
	asset := &entity.Asset{Name: name, Category: "Posto Barca", Status: status}
	require.NoError(t, db.Create(asset).Error)
	if price > 0 {
		require.NoError(t, db.Create(&entity.AssetPrice{AssetID: asset.ID, Price: price}).Error)
	}
	return asset
}

func TestBillingServiceAssignAsset(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns and bills the asset price", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		member := seedMember(t, db, "BLLSVC80A01D969A", enum.MemberStatusActive)
		asset := seedAsset(t, db, "Posto B-01", enum.AssetStatusAvailable, 150000)

		result, err := svc.AssignAsset(ctx, &AssignAssetInput{
			MemberID:  member.ID,
			AssetID:   asset.ID,
			StartDate: "2026-01-01",
			EndDate:   "2026-12-31",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(150000), result.Invoice.TotalAmount)
		assert.Equal(t, 2026, result.Assignment.FiscalYear)
		assert.Contains(t, result.Invoice.Lines[0].Description, "Posto B-01")
	})

	t.Run("uncosted asset is billed at zero", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		member := seedMember(t, db, "BLLSVC80A01D969B", enum.MemberStatusActive)
		asset := seedAsset(t, db, "Armadietto 3", enum.AssetStatusAvailable, 0)

		result, err := svc.AssignAsset(ctx, &AssignAssetInput{
			MemberID:  member.ID,
			AssetID:   asset.ID,
			StartDate: "2026-01-01",
			EndDate:   "2026-12-31",
		})
		require.NoError(t, err)
		assert.Zero(t, result.Invoice.TotalAmount)
	})

	t.Run("unknown member is a 404", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		asset := seedAsset(t, db, "Posto B-02", enum.AssetStatusAvailable, 100000)

		_, err := svc.AssignAsset(ctx, &AssignAssetInput{
			MemberID:  999,
			AssetID:   asset.ID,
			StartDate: "2026-01-01",
			EndDate:   "2026-12-31",
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("unknown asset is a 404", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		member := seedMember(t, db, "BLLSVC80A01D969C", enum.MemberStatusActive)

		_, err := svc.AssignAsset(ctx, &AssignAssetInput{
			MemberID:  member.ID,
			AssetID:   999,
			StartDate: "2026-01-01",
			EndDate:   "2026-12-31",
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})

	t.Run("ceased member cannot receive assignments", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		member := seedMember(t, db, "BLLSVC80A01D969D", enum.MemberStatusCeased)
		asset := seedAsset(t, db, "Posto B-03", enum.AssetStatusAvailable, 100000)

		_, err := svc.AssignAsset(ctx, &AssignAssetInput{
			MemberID:  member.ID,
			AssetID:   asset.ID,
			StartDate: "2026-01-01",
			EndDate:   "2026-12-31",
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("overlapping period on an occupied asset is a conflict", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		member := seedMember(t, db, "BLLSVC80A01D969E", enum.MemberStatusActive)
		holder := seedMember(t, db, "BLLSVC80A01D969G", enum.MemberStatusActive)
		asset := seedAsset(t, db, "Posto B-04", enum.AssetStatusOccupied, 100000)

		require.NoError(t, db.Create(&entity.Assignment{
			MemberID:   holder.ID,
			AssetID:    asset.ID,
			FiscalYear: 2026,
			StartDate:  date(2026, 1, 1),
			EndDate:    date(2026, 12, 31),
			Status:     enum.AssignmentStatusActive,
		}).Error)

		_, err := svc.AssignAsset(ctx, &AssignAssetInput{
			MemberID:  member.ID,
			AssetID:   asset.ID,
			StartDate: "2026-06-01",
			EndDate:   "2026-09-30",
		})
		require.Error(t, err)
		assert.Equal(t, 409, apperror.GetAppError(err).Code)
	})

	t.Run("occupied asset accepts a disjoint future period", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		member := seedMember(t, db, "BLLSVC80A01D969H", enum.MemberStatusActive)
		holder := seedMember(t, db, "BLLSVC80A01D969I", enum.MemberStatusActive)
		asset := seedAsset(t, db, "Posto C-07", enum.AssetStatusOccupied, 100000)

		require.NoError(t, db.Create(&entity.Assignment{
			MemberID:   holder.ID,
			AssetID:    asset.ID,
			FiscalYear: 2026,
			StartDate:  date(2026, 1, 1),
			EndDate:    date(2026, 12, 31),
			Status:     enum.AssignmentStatusActive,
		}).Error)

		result, err := svc.AssignAsset(ctx, &AssignAssetInput{
			MemberID:  member.ID,
			AssetID:   asset.ID,
			StartDate: "2027-01-01",
			EndDate:   "2027-12-31",
		})
		require.NoError(t, err)
		assert.Equal(t, 2027, result.Assignment.FiscalYear)
		assert.Equal(t, int64(100000), result.Invoice.TotalAmount)
	})

	t.Run("end before start is a 400", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		member := seedMember(t, db, "BLLSVC80A01D969F", enum.MemberStatusActive)
		asset := seedAsset(t, db, "Posto B-05", enum.AssetStatusAvailable, 100000)

		_, err := svc.AssignAsset(ctx, &AssignAssetInput{
			MemberID:  member.ID,
			AssetID:   asset.ID,
			StartDate: "2026-12-31",
			EndDate:   "2026-01-01",
		})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})
}

func TestBillingServiceDeliverService(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers and bills the service cost", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		member := seedMember(t, db, "DLVSVC80A01D969A", enum.MemberStatusActive)
		prestazione := &entity.Service{Name: "Iscrizione regata", Cost: 7500}
		require.NoError(t, db.Create(prestazione).Error)

		result, err := svc.DeliverService(ctx, &DeliverServiceInput{
			MemberID:    member.ID,
			ServiceID:   prestazione.ID,
			DeliveredAt: "2026-04-10",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7500), result.Invoice.TotalAmount)
		assert.Equal(t, date(2026, 4, 10), result.Delivery.DeliveredAt)
		assert.Contains(t, result.Invoice.Lines[0].Description, "Iscrizione regata")
	})

	t.Run("accepts a full timestamp delivery date", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		member := seedMember(t, db, "DLVSVC80A01D969B", enum.MemberStatusActive)
		prestazione := &entity.Service{Name: "Doccia", Cost: 100}
		require.NoError(t, db.Create(prestazione).Error)

		result, err := svc.DeliverService(ctx, &DeliverServiceInput{
			MemberID:    member.ID,
			ServiceID:   prestazione.ID,
			DeliveredAt: "2026-04-10 15:30:00",
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 4, 10, 15, 30, 0, 0, time.UTC), result.Delivery.DeliveredAt)
	})

	t.Run("defaults the delivery date to the service clock", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		svc.now = fixedClock(time.Date(2026, 5, 20, 11, 0, 0, 0, time.UTC))
		member := seedMember(t, db, "DLVSVC80A01D969D", enum.MemberStatusActive)
		prestazione := &entity.Service{Name: "Gruaggio", Cost: 3000}
		require.NoError(t, db.Create(prestazione).Error)

		result, err := svc.DeliverService(ctx, &DeliverServiceInput{
			MemberID:  member.ID,
			ServiceID: prestazione.ID,
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 5, 20, 11, 0, 0, 0, time.UTC), result.Delivery.DeliveredAt)
		assert.Contains(t, result.Invoice.Lines[0].Description, "20/05/2026")
	})

	t.Run("unknown service is a 404", func(t *testing.T) {
		db := newTestDB(t)
		svc := newBillingService(db)
		member := seedMember(t, db, "DLVSVC80A01D969C", enum.MemberStatusActive)

		_, err := svc.DeliverService(ctx, &DeliverServiceInput{
			MemberID:  member.ID,
			ServiceID: 999,
		})
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)
	})
}

func TestBillingServiceTerminateAssignment(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	svc := newBillingService(db)
	member := seedMember(t, db, "TRMSVC80A01D969A", enum.MemberStatusActive)
	asset := seedAsset(t, db, "Posto C-01", enum.AssetStatusAvailable, 100000)

	result, err := svc.AssignAsset(ctx, &AssignAssetInput{
		MemberID:  member.ID,
		AssetID:   asset.ID,
		StartDate: "2026-01-01",
		EndDate:   "2026-12-31",
	})
	require.NoError(t, err)

	terminated, err := svc.TerminateAssignment(ctx, result.Assignment.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.AssignmentStatusTerminated, terminated.Status)

	var reloaded entity.Asset
	require.NoError(t, db.First(&reloaded, asset.ID).Error)
	assert.Equal(t, enum.AssetStatusAvailable, reloaded.Status)

	_, err = svc.TerminateAssignment(ctx, result.Assignment.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}
