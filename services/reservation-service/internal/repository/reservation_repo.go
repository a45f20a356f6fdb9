package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/WillBBHM/ProgrammationWeb/services/reservation-service/internal/domain"
)

var ErrOverlap = errors.New("boat already reserved for this period")

// lockRows adds FOR UPDATE on dialects that support it. sqlite (used in
// tests) has no row locks; its writes are serialized by the engine.
func lockRows(q *gorm.DB) *gorm.DB {
	if q.Dialector.Name() == "postgres" {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

type ReservationRepo struct{ db *gorm.DB }

func NewReservationRepo(db *gorm.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

func (r *ReservationRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Reservation{})
}

// overlapping selects non-cancelled reservations for the boat whose closed
// interval touches [start, end]. The predicate runs in SQL so the store can
// use the (boat_id, start_date, end_date) index.
func overlapping(tx *gorm.DB, boatID string, start, end time.Time, excludeID string) *gorm.DB {
	q := tx.Model(&domain.Reservation{}).
		Where("boat_id = ?", boatID).
		Where("status <> ?", domain.StatusCancelled).
		Where("start_date <= ? AND end_date >= ?", end, start)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	return q
}

// CreateIfFree inserts the reservation unless the boat is already held for
// an overlapping period. Check and insert run in one transaction; candidate
// conflicting rows are locked first, so two concurrent requests for the same
// slot cannot both pass the check. Any query failure aborts the booking.
func (r *ReservationRepo) CreateIfFree(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blocking domain.Reservation
		err := lockRows(overlapping(tx, res.BoatID, res.StartDate, res.EndDate, "")).
			Take(&blocking).Error
		if err == nil {
			return ErrOverlap
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

// UpdateIfFree overwrites the stored reservation, ignoring its own previous
// interval when checking for conflicts.
func (r *ReservationRepo) UpdateIfFree(ctx context.Context, res *domain.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current domain.Reservation
		if err := tx.First(&current, "id = ?", res.ID).Error; err != nil {
			return err
		}
		var blocking domain.Reservation
		err := lockRows(overlapping(tx, res.BoatID, res.StartDate, res.EndDate, res.ID)).
			Take(&blocking).Error
		if err == nil {
			return ErrOverlap
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		res.CreatedAt = current.CreatedAt
		return tx.Save(res).Error
	})
}

// IsFree reports whether the boat has no blocking reservation over the range.
func (r *ReservationRepo) IsFree(ctx context.Context, boatID string, start, end time.Time, excludeID string) (bool, error) {
	var n int64
	err := overlapping(r.db.WithContext(ctx), boatID, start, end, excludeID).Count(&n).Error
	if err != nil {
		return false, err
	}
	return n == 0, nil
}

func (r *ReservationRepo) ByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ReservationRepo) List(ctx context.Context) ([]domain.Reservation, error) {
	var out []domain.Reservation
	if err := r.db.WithContext(ctx).Order("start_date ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the row for good; there is no soft delete.
func (r *ReservationRepo) Delete(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).Delete(&domain.Reservation{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
