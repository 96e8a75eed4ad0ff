package services_test

import (
	"testing"

	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
	"pilates_reserva/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitForcesPendingStatus(t *testing.T) {
	db := setupDB(t)
	svc := services.NewContactService(repository.NewContactRepository(db))

	msg := &models.ContactMessage{
		Name:    "Marcela Rojas",
		Email:   "marcela@test.cl",
		Message: "¿Tienen clases para embarazadas?",
		Status:  string(models.ContactResponded), // ignored on submit
	}
	require.NoError(t, svc.Submit(msg))
	assert.Equal(t, string(models.ContactPending), msg.Status)
}

func TestTriageContact(t *testing.T) {
	db := setupDB(t)
	svc := services.NewContactService(repository.NewContactRepository(db))

	msg := &models.ContactMessage{Name: "Marcela", Email: "marcela@test.cl", Message: "Hola"}
	require.NoError(t, svc.Submit(msg))

	triaged, err := svc.Triage(msg.ID, string(models.ContactReviewed), "Responder por WhatsApp")
	require.NoError(t, err)
	assert.Equal(t, string(models.ContactReviewed), triaged.Status)
	assert.Equal(t, "Responder por WhatsApp", triaged.Comment)

	_, err = svc.Triage(msg.ID, "archivado", "")
	assert.ErrorIs(t, err, services.ErrInvalidContactStatus)
}

func TestListContactsByStatus(t *testing.T) {
	db := setupDB(t)
	svc := services.NewContactService(repository.NewContactRepository(db))

	first := &models.ContactMessage{Name: "Marcela", Email: "marcela@test.cl", Message: "Hola"}
	second := &models.ContactMessage{Name: "Tomás", Email: "tomas@test.cl", Message: "Precios"}
	require.NoError(t, svc.Submit(first))
	require.NoError(t, svc.Submit(second))

	_, err := svc.Triage(second.ID, string(models.ContactResponded), "")
	require.NoError(t, err)

	pending, err := svc.List(string(models.ContactPending))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "Marcela", pending[0].Name)

	all, err := svc.List("todos")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
