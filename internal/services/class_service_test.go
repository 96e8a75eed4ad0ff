package services_test

import (
	"testing"

	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
	"pilates_reserva/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newClassService(db *gorm.DB) services.ClassService {
	return services.NewClassService(
		repository.NewClassRepository(db),
		repository.NewReservationRepository(db),
	)
}

func TestCreateClassValidation(t *testing.T) {
	db := setupDB(t)
	svc := newClassService(db)

	err := svc.Create(&models.ClassSession{Name: "Clase Mat", Date: dateFromToday(1), StartTime: "09:00", Capacity: 0})
	assert.ErrorIs(t, err, services.ErrInvalidCapacity)

	err = svc.Create(&models.ClassSession{Name: "Clase Mat", Date: dateFromToday(1), StartTime: "09:00", Capacity: 8})
	assert.NoError(t, err)
}

func TestAvailableOccupancy(t *testing.T) {
	db := setupDB(t)
	svc := newClassService(db)
	bookSvc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	class := createClass(t, db, "Clase Reformer", dateFromToday(2), "09:00", 2)
	createClass(t, db, "Clase Pasada", dateFromToday(-2), "09:00", 10)

	user := createUser(t, db, "marcela", string(models.RoleClient))
	_, err := bookSvc.Book(user.ID, class.ID)
	require.NoError(t, err)

	items, err := svc.Available(dateFromToday(0))
	require.NoError(t, err)
	require.Len(t, items, 1, "past classes are excluded")

	assert.Equal(t, class.ID, items[0].Class.ID)
	assert.EqualValues(t, 1, items[0].Taken)
	assert.EqualValues(t, 1, items[0].Free)
	assert.True(t, items[0].HasRoom)
}

func TestAvailableCancelledDoNotCount(t *testing.T) {
	db := setupDB(t)
	svc := newClassService(db)
	bookSvc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	class := createClass(t, db, "Clase Mat", dateFromToday(2), "09:00", 1)
	user := createUser(t, db, "marcela", string(models.RoleClient))

	reservation, err := bookSvc.Book(user.ID, class.ID)
	require.NoError(t, err)
	_, err = bookSvc.Cancel(user.ID, reservation.ID)
	require.NoError(t, err)

	items, err := svc.Available(dateFromToday(0))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 0, items[0].Taken)
	assert.True(t, items[0].HasRoom)
}
