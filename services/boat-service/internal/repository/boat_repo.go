package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/WillBBHM/ProgrammationWeb/services/boat-service/internal/domain"
)

var ErrBoatBusy = errors.New("boat already reserved for this period")

type BoatRepo struct{ db *gorm.DB }

func NewBoatRepo(db *gorm.DB) *BoatRepo {
	return &BoatRepo{db: db}
}

func (r *BoatRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Boat{}, &domain.Reservation{})
}

func (r *BoatRepo) List(ctx context.Context) ([]domain.Boat, error) {
	var out []domain.Boat
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BoatRepo) ByID(ctx context.Context, id string) (*domain.Boat, error) {
	var b domain.Boat
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func blocking(tx *gorm.DB, boatID string, start, end time.Time) *gorm.DB {
	return tx.Model(&domain.Reservation{}).
		Where("boat_id = ?", boatID).
		Where("status <> ?", "cancelled").
		Where("start_date <= ? AND end_date >= ?", end, start)
}

// IsAvailable derives the availability flag from live reservation rows:
// the boat is free for the closed range [start, end] iff no non-cancelled
// reservation overlaps it.
func (r *BoatRepo) IsAvailable(ctx context.Context, boatID string, start, end time.Time) (bool, error) {
	var n int64
	if err := blocking(r.db.WithContext(ctx), boatID, start, end).Count(&n).Error; err != nil {
		return false, err
	}
	return n == 0, nil
}

// Reserve inserts a pending reservation for the boat unless the period is
// taken, locking candidate conflicting rows first.
func (r *BoatRepo) Reserve(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := blocking(tx, res.BoatID, res.StartDate, res.EndDate)
		// sqlite (tests) has no row locks; its writes are serialized anyway
		if tx.Dialector.Name() == "postgres" {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var taken domain.Reservation
		err := q.Take(&taken).Error
		if err == nil {
			return ErrBoatBusy
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if res.ID == "" {
			res.ID = uuid.NewString()
		}
		return tx.Create(res).Error
	})
}
