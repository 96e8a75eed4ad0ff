package services_test

import (
	"strings"
	"testing"

	"pilates_reserva/internal/config"
	"pilates_reserva/internal/repository"
	"pilates_reserva/internal/services"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newChatbot(db *gorm.DB) services.ChatbotService {
	cfg := &config.Config{
		ChatbotAddress: "Av. Ejemplo 1234, Santiago, Chile",
		ChatbotPhone:   "+56 9 1234 5678",
		ChatbotPrices:  "Tenemos planes por clase y membresías mensuales.",
	}
	return services.NewChatbotService(repository.NewClassRepository(db), nil, cfg)
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"¿Cuál es el HORARIO?", "cual es el horario"},
		{"  Dónde   están??  ", "donde estan"},
		{"Reformer!", "reformer"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, services.NormalizeText(tt.in), tt.in)
	}
}

func TestChatGreeting(t *testing.T) {
	db := setupDB(t)
	bot := newChatbot(db)

	reply := bot.Reply("Hola!")
	assert.Contains(t, reply, "asistente de PilatesReserva")
}

func TestChatEmptyMessage(t *testing.T) {
	db := setupDB(t)
	bot := newChatbot(db)

	assert.Equal(t, "Escríbeme tu consulta y te ayudo 🙂", bot.Reply("   "))
}

func TestChatLocation(t *testing.T) {
	db := setupDB(t)
	bot := newChatbot(db)

	reply := bot.Reply("¿Dónde están ubicados? cuál es la dirección")
	assert.Contains(t, reply, "Av. Ejemplo 1234")
}

func TestChatPrices(t *testing.T) {
	db := setupDB(t)
	bot := newChatbot(db)

	reply := bot.Reply("que precio tienen las membresias?")
	assert.Contains(t, reply, "planes por clase")
}

func TestChatUpcomingFilteredByType(t *testing.T) {
	db := setupDB(t)
	bot := newChatbot(db)

	createClass(t, db, "Clase Reformer", dateFromToday(2), "09:00", 10)
	createClass(t, db, "Clase Mat", dateFromToday(2), "18:00", 10)

	reply := bot.Reply("cual es el horario de reformer")
	assert.Contains(t, reply, "Próximas clases de Reformer")
	assert.Contains(t, reply, "09:00")
	assert.NotContains(t, reply, "Clase Mat")
}

func TestChatUpcomingNoClasses(t *testing.T) {
	db := setupDB(t)
	bot := newChatbot(db)

	reply := bot.Reply("horario")
	assert.Contains(t, reply, "No hay clases publicadas")
}

func TestChatFuzzyMatch(t *testing.T) {
	db := setupDB(t)
	bot := newChatbot(db)

	// Close to the canonical "reprogramar" but not an exact keyword hit.
	reply := bot.Reply("reprogramacion")
	assert.Contains(t, reply, "reagendar")
}

func TestChatQuickFAQ(t *testing.T) {
	db := setupDB(t)
	bot := newChatbot(db)

	reply := bot.Reply("aceptan algún método de pago en línea?")
	assert.Contains(t, reply, "transferencia")
}

func TestChatGenericFallback(t *testing.T) {
	db := setupDB(t)
	bot := newChatbot(db)

	reply := bot.Reply("xyzzy frobnicate")
	assert.Contains(t, reply, "Gracias por tu mensaje")
}

func TestChatClassTypesCurated(t *testing.T) {
	db := setupDB(t)
	cfg := &config.Config{ChatbotClassTypes: "Reformer, Mat , Full Power"}
	bot := services.NewChatbotService(repository.NewClassRepository(db), nil, cfg)

	reply := bot.Reply("que tipos de clase ofrecen")
	assert.Contains(t, reply, "• Reformer")
	assert.Contains(t, reply, "• Mat")
	assert.Contains(t, reply, "• Full Power")
}

func TestChatClassTypesFromCatalog(t *testing.T) {
	db := setupDB(t)
	bot := newChatbot(db)

	createClass(t, db, "Clase Reformer", dateFromToday(1), "09:00", 10)
	createClass(t, db, "clase reformer avanzado", dateFromToday(2), "10:00", 10)
	createClass(t, db, "Pilates Mat", dateFromToday(3), "18:00", 10)

	reply := bot.Reply("que modalidad tienen")
	assert.Contains(t, reply, "Reformer")
	assert.Contains(t, reply, "Mat")
	// Both reformer variants collapse into one bullet.
	assert.Equal(t, 1, strings.Count(reply, "Reformer"))
}
