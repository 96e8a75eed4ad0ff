package services_test

import (
	"testing"

	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
	"pilates_reserva/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookClass(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	user := createUser(t, db, "marcela", string(models.RoleClient))
	class := createClass(t, db, "Clase Reformer Avanzado", dateFromToday(3), "09:00", 5)

	reservation, err := svc.Book(user.ID, class.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.ReservationConfirmed), reservation.Status)
	assert.Equal(t, "reformer", reservation.Type)
	assert.Equal(t, class.StartTime, reservation.StartTime)
	require.NotNil(t, reservation.ClassSessionID)
	assert.Equal(t, class.ID, *reservation.ClassSessionID)
}

func TestBookClassInPast(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	user := createUser(t, db, "marcela", string(models.RoleClient))
	class := createClass(t, db, "Clase Mat", dateFromToday(-1), "09:00", 5)

	_, err := svc.Book(user.ID, class.ID)
	assert.ErrorIs(t, err, services.ErrPastClass)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.Zero(t, count, "rejected booking must not create a row")
}

func TestBookClassFull(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	first := createUser(t, db, "marcela", string(models.RoleClient))
	second := createUser(t, db, "tomas", string(models.RoleClient))
	class := createClass(t, db, "Clase Mat", dateFromToday(3), "09:00", 1)

	_, err := svc.Book(first.ID, class.ID)
	require.NoError(t, err)

	_, err = svc.Book(second.ID, class.ID)
	assert.ErrorIs(t, err, repository.ErrClassFull)

	var count int64
	db.Model(&models.Reservation{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestBookClassDuplicate(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	user := createUser(t, db, "marcela", string(models.RoleClient))
	class := createClass(t, db, "Clase Grupal", dateFromToday(3), "09:00", 5)

	_, err := svc.Book(user.ID, class.ID)
	require.NoError(t, err)

	_, err = svc.Book(user.ID, class.ID)
	assert.ErrorIs(t, err, repository.ErrAlreadyBooked)
}

func TestBookClassAgainAfterCancel(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	user := createUser(t, db, "marcela", string(models.RoleClient))
	class := createClass(t, db, "Clase Grupal", dateFromToday(3), "09:00", 5)

	reservation, err := svc.Book(user.ID, class.ID)
	require.NoError(t, err)

	alreadyCancelled, err := svc.Cancel(user.ID, reservation.ID)
	require.NoError(t, err)
	assert.False(t, alreadyCancelled)

	_, err = svc.Book(user.ID, class.ID)
	assert.NoError(t, err, "a cancelled reservation must not block rebooking")
}

func TestCapacityNeverExceededSequentially(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	class := createClass(t, db, "Clase Mat", dateFromToday(3), "09:00", 2)
	users := []*models.User{
		createUser(t, db, "u1", string(models.RoleClient)),
		createUser(t, db, "u2", string(models.RoleClient)),
		createUser(t, db, "u3", string(models.RoleClient)),
	}

	var booked int
	for _, u := range users {
		if _, err := svc.Book(u.ID, class.ID); err == nil {
			booked++
		}
	}
	assert.Equal(t, 2, booked)

	var count int64
	db.Model(&models.Reservation{}).
		Where("class_session_id = ? AND status <> ?", class.ID, string(models.ReservationCancelled)).
		Count(&count)
	assert.LessOrEqual(t, count, int64(class.Capacity))
}

func TestCancelAlreadyCancelled(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	user := createUser(t, db, "marcela", string(models.RoleClient))
	class := createClass(t, db, "Clase Mat", dateFromToday(3), "09:00", 5)

	reservation, err := svc.Book(user.ID, class.ID)
	require.NoError(t, err)

	alreadyCancelled, err := svc.Cancel(user.ID, reservation.ID)
	require.NoError(t, err)
	assert.False(t, alreadyCancelled)

	// Second cancel is a no-op that still succeeds.
	alreadyCancelled, err = svc.Cancel(user.ID, reservation.ID)
	require.NoError(t, err)
	assert.True(t, alreadyCancelled)
}

func TestCancelNotOwner(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	owner := createUser(t, db, "marcela", string(models.RoleClient))
	other := createUser(t, db, "tomas", string(models.RoleClient))
	class := createClass(t, db, "Clase Mat", dateFromToday(3), "09:00", 5)

	reservation, err := svc.Book(owner.ID, class.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(other.ID, reservation.ID)
	assert.ErrorIs(t, err, services.ErrNotOwner)
}

func TestBookManual(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)
	user := createUser(t, db, "marcela", string(models.RoleClient))

	// 2026-09-07 is a Monday.
	reservation, err := svc.BookManual(user.ID, "mat", "2026-09-07", "09:00")
	require.NoError(t, err)
	assert.Equal(t, "mat", reservation.Type)
	require.NotNil(t, reservation.EndTime)
	assert.Equal(t, "10:00", *reservation.EndTime)
	assert.Nil(t, reservation.ClassSessionID)

	// Same slot again is rejected.
	_, err = svc.BookManual(user.ID, "mat", "2026-09-07", "09:00")
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
}

func TestBookManualValidation(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)
	user := createUser(t, db, "marcela", string(models.RoleClient))

	tests := []struct {
		name      string
		classType string
		date      string
		hour      string
		wantErr   error
	}{
		{"unknown type", "yoga", "2026-09-07", "09:00", services.ErrInvalidType},
		{"sunday", "mat", "2026-09-06", "09:00", services.ErrInvalidDay},
		{"bad date", "mat", "no-es-fecha", "09:00", services.ErrInvalidDay},
		{"hour off the grid", "mat", "2026-09-07", "13:00", services.ErrInvalidHour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.BookManual(user.ID, tt.classType, tt.date, tt.hour)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestChangeStatus(t *testing.T) {
	db := setupDB(t)
	svc := services.NewReservationService(
		repository.NewReservationRepository(db),
		repository.NewClassRepository(db),
	)

	user := createUser(t, db, "marcela", string(models.RoleClient))
	class := createClass(t, db, "Clase Mat", dateFromToday(3), "09:00", 5)
	reservation, err := svc.Book(user.ID, class.ID)
	require.NoError(t, err)

	require.NoError(t, svc.ChangeStatus(reservation.ID, string(models.ReservationCompleted)))

	var got models.Reservation
	require.NoError(t, db.First(&got, reservation.ID).Error)
	assert.Equal(t, string(models.ReservationCompleted), got.Status)

	assert.ErrorIs(t, svc.ChangeStatus(reservation.ID, "Inventada"), services.ErrInvalidStatus)
}

func TestInferClassType(t *testing.T) {
	tests := []struct {
		name string
		want models.ClassType
	}{
		{"Clase Reformer Avanzado", models.ClassReformer},
		{"Pilates Mat Matinal", models.ClassMat},
		{"Clase Grupal", models.ClassGroup},
		{"Full Power", models.ClassGroup},
		{"", models.ClassGroup},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, models.InferClassType(tt.name), tt.name)
	}
}
