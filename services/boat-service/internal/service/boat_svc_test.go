package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/WillBBHM/ProgrammationWeb/pkg/httperr"
	"github.com/WillBBHM/ProgrammationWeb/services/boat-service/internal/domain"
	"github.com/WillBBHM/ProgrammationWeb/services/boat-service/internal/repository"
)

func newTestSvc(t *testing.T) (*BoatSvc, *gorm.DB) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	repo := repository.NewBoatRepo(gdb)
	require.NoError(t, repo.Migrate())
	return NewBoatSvc(repo), gdb
}

func seedBoat(t *testing.T, gdb *gorm.DB, id, name string) {
	t.Helper()
	require.NoError(t, gdb.Create(&domain.Boat{
		ID:       id,
		Name:     name,
		Price:    350,
		Category: "voilier",
		Location: "La Rochelle",
		Capacity: 8,
		Length:   12.5,
		Year:     2018,
		Features: []string{"GPS", "cabine double"},
	}).Error)
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var e *httperr.E
	require.ErrorAs(t, err, &e)
	return e.Status
}

func TestListAndGet(t *testing.T) {
	svc, gdb := newTestSvc(t)
	ctx := context.Background()
	seedBoat(t, gdb, "42", "Perle Bleue")

	boats, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, boats, 1)
	assert.Equal(t, []string{"GPS", "cabine double"}, boats[0].Features)

	b, err := svc.Get(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Perle Bleue", b.Name)

	_, err = svc.Get(ctx, "9000")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestAvailability_DerivedFromReservations(t *testing.T) {
	svc, gdb := newTestSvc(t)
	ctx := context.Background()
	seedBoat(t, gdb, "42", "Perle Bleue")

	free, err := svc.Availability(ctx, "42", "2024-07-01", "2024-07-10")
	require.NoError(t, err)
	assert.True(t, free)

	_, err = svc.Reserve(ctx, ReserveInput{
		NomPersonne: "Jean Dupont",
		DateDebut:   "2024-07-01",
		DateFin:     "2024-07-10",
		IDBateau:    "42",
	})
	require.NoError(t, err)

	free, err = svc.Availability(ctx, "42", "2024-07-05", "2024-07-08")
	require.NoError(t, err)
	assert.False(t, free)

	free, err = svc.Availability(ctx, "42", "2024-07-11", "2024-07-15")
	require.NoError(t, err)
	assert.True(t, free)

	// cancelled rows stop blocking
	require.NoError(t, gdb.Model(&domain.Reservation{}).
		Where("boat_id = ?", "42").Update("status", "cancelled").Error)
	free, err = svc.Availability(ctx, "42", "2024-07-05", "2024-07-08")
	require.NoError(t, err)
	assert.True(t, free)
}

func TestAvailability_DefaultsToToday(t *testing.T) {
	svc, gdb := newTestSvc(t)
	ctx := context.Background()
	seedBoat(t, gdb, "42", "Perle Bleue")

	today := time.Now().UTC().Format(time.DateOnly)
	_, err := svc.Reserve(ctx, ReserveInput{
		NomPersonne: "Jean Dupont",
		DateDebut:   today,
		DateFin:     today,
		IDBateau:    "42",
	})
	require.NoError(t, err)

	free, err := svc.Availability(ctx, "42", "", "")
	require.NoError(t, err)
	assert.False(t, free)
}

func TestAvailability_Validation(t *testing.T) {
	svc, gdb := newTestSvc(t)
	ctx := context.Background()
	seedBoat(t, gdb, "42", "Perle Bleue")

	_, err := svc.Availability(ctx, "42", "2024-07-01", "")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.Availability(ctx, "42", "2024-07-10", "2024-07-01")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = svc.Availability(ctx, "9000", "2024-07-01", "2024-07-10")
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestReserve_LegacyEndpointRules(t *testing.T) {
	svc, gdb := newTestSvc(t)
	ctx := context.Background()
	seedBoat(t, gdb, "42", "Perle Bleue")

	valid := ReserveInput{
		NomPersonne: "Jean Dupont",
		DateDebut:   "2024-07-01",
		DateFin:     "2024-07-10",
		IDBateau:    "42",
	}

	_, err := svc.Reserve(ctx, ReserveInput{})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	bad := valid
	bad.DateDebut, bad.DateFin = "2024-07-10", "2024-07-01"
	_, err = svc.Reserve(ctx, bad)
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	unknown := valid
	unknown.IDBateau = "9000"
	_, err = svc.Reserve(ctx, unknown)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	res, err := svc.Reserve(ctx, valid)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)
	assert.Equal(t, "pending", res.Status)

	overlap := valid
	overlap.DateDebut, overlap.DateFin = "2024-07-05", "2024-07-08"
	_, err = svc.Reserve(ctx, overlap)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}
