package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pilates_reserva/internal/config"
	"pilates_reserva/internal/handlers"
	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
	"pilates_reserva/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPublicRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ClassSession{},
		&models.Reservation{},
		&models.ContactMessage{},
	))

	classRepo := repository.NewClassRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	contactRepo := repository.NewContactRepository(db)

	cfg := &config.Config{ChatbotAddress: "Av. Ejemplo 1234, Santiago"}
	handler := handlers.NewPublicHandler(
		services.NewClassService(classRepo, reservationRepo),
		services.NewContactService(contactRepo),
		services.NewChatbotService(classRepo, nil, cfg),
	)

	router := gin.New()
	router.GET("/", handler.Landing)
	router.POST("/contacto/", handler.SubmitContact)
	router.POST("/api/chat/", handler.Chat)
	return router, db
}

func futureDate(days int) time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, days)
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestChatEndpoint(t *testing.T) {
	router, _ := setupPublicRouter(t)

	w := postJSON(router, "/api/chat/", `{"message": "hola"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "asistente de PilatesReserva")
}

func TestChatEndpointMalformedBody(t *testing.T) {
	router, _ := setupPublicRouter(t)

	// Broken JSON still gets a friendly 200, never an error page.
	w := postJSON(router, "/api/chat/", `{"message": `)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No entendí el mensaje")
}

func TestSubmitContactEndpoint(t *testing.T) {
	router, db := setupPublicRouter(t)

	w := postJSON(router, "/contacto/", `{
		"name": "Marcela Rojas",
		"email": "marcela@test.cl",
		"phone": "+56911112222",
		"message": "¿Tienen clases para principiantes?"
	}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	var msg models.ContactMessage
	require.NoError(t, db.First(&msg).Error)
	assert.Equal(t, "Marcela Rojas", msg.Name)
	assert.Equal(t, string(models.ContactPending), msg.Status)
}

func TestSubmitContactValidation(t *testing.T) {
	router, db := setupPublicRouter(t)

	w := postJSON(router, "/contacto/", `{"name": "Marcela", "email": "no-es-correo", "phone": "1", "message": "hola"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	db.Model(&models.ContactMessage{}).Count(&count)
	assert.Zero(t, count)
}

func TestLandingListsAvailability(t *testing.T) {
	router, db := setupPublicRouter(t)

	class := &models.ClassSession{Name: "Clase Reformer", Date: futureDate(2), StartTime: "09:00", Capacity: 8, Instructor: "Carla Soto"}
	require.NoError(t, db.Create(class).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Clase Reformer")
	assert.Contains(t, w.Body.String(), `"has_room":true`)
}
