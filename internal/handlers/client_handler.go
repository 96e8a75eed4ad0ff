package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pilates_reserva/internal/middleware"
	"pilates_reserva/internal/repository"
	"pilates_reserva/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClientHandler struct {
	classService       services.ClassService
	reservationService services.ReservationService
}

func NewClientHandler(classService services.ClassService, reservationService services.ReservationService) *ClientHandler {
	return &ClientHandler{
		classService:       classService,
		reservationService: reservationService,
	}
}

func (h *ClientHandler) AvailableClasses(c *gin.Context) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	items, err := h.classService.Available(today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las clases."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ClientHandler) BookClass(c *gin.Context) {
	classID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Clase no encontrada."})
		return
	}

	reservation, err := h.reservationService.Book(middleware.UserID(c), uint(classID))
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Clase no encontrada."})
		case errors.Is(err, services.ErrPastClass):
			c.JSON(http.StatusConflict, gin.H{"error": "No es posible reservar una clase en el pasado."})
		case errors.Is(err, repository.ErrClassFull):
			c.JSON(http.StatusConflict, gin.H{"error": "La clase ya no tiene cupos disponibles."})
		case errors.Is(err, repository.ErrAlreadyBooked):
			c.JSON(http.StatusConflict, gin.H{"error": "Ya reservaste esta clase."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la reserva."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "¡Reserva creada con éxito!",
		"reservation": reservation,
	})
}

type ManualBookingRequest struct {
	Type string `json:"type" binding:"required"`
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Hour string `json:"hour" binding:"required"` // HH:MM from the fixed grid
}

func (h *ClientHandler) BookManual(c *gin.Context) {
	var req ManualBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}

	reservation, err := h.reservationService.BookManual(middleware.UserID(c), req.Type, req.Date, req.Hour)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidType),
			errors.Is(err, services.ErrInvalidDay),
			errors.Is(err, services.ErrInvalidHour):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrSlotTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "Ya tienes una reserva en ese horario."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la reserva."})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "¡Reserva creada con éxito!",
		"reservation": reservation,
	})
}

func (h *ClientHandler) MyReservations(c *gin.Context) {
	result, err := h.reservationService.ListForUser(middleware.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar tus reservas."})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ClientHandler) ReservationDetail(c *gin.Context) {
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reserva no encontrada."})
		return
	}

	reservation, err := h.reservationService.GetForUser(middleware.UserID(c), uint(reservationID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reserva no encontrada."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar la reserva."})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservation": reservation})
}

func (h *ClientHandler) CancelReservation(c *gin.Context) {
	reservationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reserva no encontrada."})
		return
	}

	alreadyCancelled, err := h.reservationService.Cancel(middleware.UserID(c), uint(reservationID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, services.ErrNotOwner) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Reserva no encontrada."})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cancelar la reserva."})
		}
		return
	}

	if alreadyCancelled {
		c.JSON(http.StatusOK, gin.H{"message": "Esta reserva ya estaba cancelada."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tu reserva fue cancelada."})
}
