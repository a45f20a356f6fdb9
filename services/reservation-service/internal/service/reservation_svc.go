package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/WillBBHM/ProgrammationWeb/pkg/httperr"
	"github.com/WillBBHM/ProgrammationWeb/services/reservation-service/internal/boatapi"
	"github.com/WillBBHM/ProgrammationWeb/services/reservation-service/internal/domain"
	"github.com/WillBBHM/ProgrammationWeb/services/reservation-service/internal/repository"
)

// BoatDirectory is the existence gate against the boat catalog.
type BoatDirectory interface {
	Exists(ctx context.Context, boatID string) (*boatapi.Boat, error)
}

// Publisher emits reservation events. Publishing is best-effort and never
// blocks or fails the request that triggered it.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// NopPublisher drops events. Used when the broker is down at startup so the
// booking path keeps working without notifications.
type NopPublisher struct{}

func (NopPublisher) PublishJSON(context.Context, string, any) error { return nil }

type ReservationSvc struct {
	repo  *repository.ReservationRepo
	boats BoatDirectory
	pub   Publisher
}

func NewReservationSvc(r *repository.ReservationRepo, boats BoatDirectory, pub Publisher) *ReservationSvc {
	return &ReservationSvc{repo: r, boats: boats, pub: pub}
}

// Input is a reservation as submitted by a client, dates still unparsed.
type Input struct {
	BoatID     string
	FullName   string
	Email      string
	Phone      string
	StartDate  string
	EndDate    string
	TotalPrice float64
	Status     string
}

// parseDate accepts YYYY-MM-DD, tolerating RFC3339 by truncating to the day.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", s)
	}
	return t.UTC().Truncate(24 * time.Hour), nil
}

func (in Input) validate() (start, end time.Time, status domain.Status, err error) {
	if in.BoatID == "" || in.FullName == "" || in.StartDate == "" || in.EndDate == "" {
		return start, end, status, httperr.Validation("boatId, fullName, startDate and endDate are required")
	}
	if start, err = parseDate(in.StartDate); err != nil {
		return start, end, status, httperr.Validation(err.Error())
	}
	if end, err = parseDate(in.EndDate); err != nil {
		return start, end, status, httperr.Validation(err.Error())
	}
	if start.After(end) {
		return start, end, status, httperr.Validation("startDate must not be after endDate")
	}
	status = domain.StatusPending
	if in.Status != "" {
		status = domain.Status(in.Status)
		if !status.Valid() {
			return start, end, status, httperr.Validation("status must be pending, confirmed or cancelled")
		}
	}
	return start, end, status, nil
}

func (s *ReservationSvc) Create(ctx context.Context, in Input) (*domain.Reservation, error) {
	start, end, status, err := in.validate()
	if err != nil {
		return nil, err
	}
	if _, err := s.boats.Exists(ctx, in.BoatID); err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		BoatID:     in.BoatID,
		FullName:   in.FullName,
		Email:      in.Email,
		Phone:      in.Phone,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: in.TotalPrice,
		Status:     status,
	}
	if err := s.repo.CreateIfFree(ctx, res); err != nil {
		if errors.Is(err, repository.ErrOverlap) {
			return nil, httperr.Conflict("boat already reserved for this period")
		}
		return nil, err
	}

	_ = s.pub.PublishJSON(ctx, "reservation.created", map[string]any{
		"reservation_id": res.ID, "boat_id": res.BoatID, "full_name": res.FullName,
		"start": res.StartDate.Format(time.DateOnly), "end": res.EndDate.Format(time.DateOnly),
	})
	return res, nil
}

// Update replaces the stored reservation wholesale, re-running the existence
// gate and the overlap check (minus the reservation's own interval). Status
// may only move pending -> confirmed|cancelled.
func (s *ReservationSvc) Update(ctx context.Context, id string, in Input) (*domain.Reservation, error) {
	start, end, status, err := in.validate()
	if err != nil {
		return nil, err
	}
	current, err := s.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("reservation not found")
		}
		return nil, err
	}
	if !current.Status.CanTransition(status) {
		return nil, httperr.Conflict(fmt.Sprintf("cannot change status from %s to %s", current.Status, status))
	}
	if _, err := s.boats.Exists(ctx, in.BoatID); err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		ID:         id,
		BoatID:     in.BoatID,
		FullName:   in.FullName,
		Email:      in.Email,
		Phone:      in.Phone,
		StartDate:  start,
		EndDate:    end,
		TotalPrice: in.TotalPrice,
		Status:     status,
	}
	if err := s.repo.UpdateIfFree(ctx, res); err != nil {
		switch {
		case errors.Is(err, repository.ErrOverlap):
			return nil, httperr.Conflict("boat already reserved for this period")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, httperr.NotFound("reservation not found")
		}
		return nil, err
	}

	key := "reservation.updated"
	if status != current.Status {
		key = "reservation." + string(status)
	}
	_ = s.pub.PublishJSON(ctx, key, map[string]any{
		"reservation_id": res.ID, "boat_id": res.BoatID, "status": string(res.Status),
	})
	return res, nil
}

func (s *ReservationSvc) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	res, err := s.repo.ByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.NotFound("reservation not found")
	}
	return res, err
}

func (s *ReservationSvc) List(ctx context.Context) ([]domain.Reservation, error) {
	return s.repo.List(ctx)
}

func (s *ReservationSvc) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.NotFound("reservation not found")
		}
		return err
	}
	_ = s.pub.PublishJSON(ctx, "reservation.deleted", map[string]any{"reservation_id": id})
	return nil
}
