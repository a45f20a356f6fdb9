package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/WillBBHM/ProgrammationWeb/pkg/httperr"
	"github.com/WillBBHM/ProgrammationWeb/services/boat-service/internal/domain"
	"github.com/WillBBHM/ProgrammationWeb/services/boat-service/internal/repository"
)

type BoatSvc struct {
	repo *repository.BoatRepo
}

func NewBoatSvc(r *repository.BoatRepo) *BoatSvc {
	return &BoatSvc{repo: r}
}

func (s *BoatSvc) List(ctx context.Context) ([]domain.Boat, error) {
	boats, err := s.repo.List(ctx)
	if err != nil {
		return nil, httperr.Upstream("database unavailable", err)
	}
	return boats, nil
}

func (s *BoatSvc) Get(ctx context.Context, id string) (*domain.Boat, error) {
	b, err := s.repo.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound(fmt.Sprintf("boat %s not found", id))
		}
		return nil, httperr.Upstream("database unavailable", err)
	}
	return b, nil
}

// Availability reports whether the boat is free over [startStr, endStr].
// With no range given it answers for today only.
func (s *BoatSvc) Availability(ctx context.Context, id, startStr, endStr string) (bool, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return false, err
	}
	start := today()
	end := start
	var err error
	if startStr != "" || endStr != "" {
		if startStr == "" || endStr == "" {
			return false, httperr.Validation("start and end must be given together")
		}
		if start, err = time.Parse(time.DateOnly, startStr); err != nil {
			return false, httperr.Validation("invalid start date, want YYYY-MM-DD")
		}
		if end, err = time.Parse(time.DateOnly, endStr); err != nil {
			return false, httperr.Validation("invalid end date, want YYYY-MM-DD")
		}
		if start.After(end) {
			return false, httperr.Validation("start must not be after end")
		}
	}
	free, err := s.repo.IsAvailable(ctx, id, start, end)
	if err != nil {
		return false, httperr.Upstream("database unavailable", err)
	}
	return free, nil
}

// ReserveInput is the legacy booking request this service kept for older
// clients. Field names match the original French API.
type ReserveInput struct {
	NomPersonne string
	DateDebut   string
	DateFin     string
	IDBateau    string
}

func (s *BoatSvc) Reserve(ctx context.Context, in ReserveInput) (*domain.Reservation, error) {
	if in.NomPersonne == "" || in.DateDebut == "" || in.DateFin == "" || in.IDBateau == "" {
		return nil, httperr.Validation("nom_personne, date_debut, date_fin and id_bateau are required")
	}
	start, err := time.Parse(time.DateOnly, in.DateDebut)
	if err != nil {
		return nil, httperr.Validation("invalid date_debut, want YYYY-MM-DD")
	}
	end, err := time.Parse(time.DateOnly, in.DateFin)
	if err != nil {
		return nil, httperr.Validation("invalid date_fin, want YYYY-MM-DD")
	}
	if start.After(end) {
		return nil, httperr.Validation("date_debut must not be after date_fin")
	}
	if _, err := s.Get(ctx, in.IDBateau); err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		BoatID:    in.IDBateau,
		FullName:  in.NomPersonne,
		StartDate: start,
		EndDate:   end,
		Status:    "pending",
	}
	if err := s.repo.Reserve(ctx, res); err != nil {
		if errors.Is(err, repository.ErrBoatBusy) {
			return nil, httperr.Conflict("boat already reserved for this period")
		}
		return nil, httperr.Upstream("database unavailable", err)
	}
	return res, nil
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
