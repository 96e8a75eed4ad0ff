package handlers

import (
	"net/http"
	"time"

	"pilates_reserva/internal/models"
	"pilates_reserva/internal/services"

	"github.com/gin-gonic/gin"
)

type PublicHandler struct {
	classService   services.ClassService
	contactService services.ContactService
	chatbotService services.ChatbotService
}

func NewPublicHandler(
	classService services.ClassService,
	contactService services.ContactService,
	chatbotService services.ChatbotService,
) *PublicHandler {
	return &PublicHandler{
		classService:   classService,
		contactService: contactService,
		chatbotService: chatbotService,
	}
}

// Landing is the public catalog: upcoming classes with availability.
func (h *PublicHandler) Landing(c *gin.Context) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	items, err := h.classService.Available(today)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las clases."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"studio": "PilatesReserva",
		"items":  items,
	})
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func (h *PublicHandler) SubmitContact(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}

	message := &models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Message: req.Message,
	}
	if err := h.contactService.Submit(message); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo enviar tu mensaje."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "¡Gracias por escribirnos! Te contactaremos pronto."})
}

type ChatRequest struct {
	Message string `json:"message"`
}

// Chat answers always land with a 200 and a reply; a malformed body gets a
// friendly prompt instead of an error page.
func (h *PublicHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"reply": "No entendí el mensaje. ¿Puedes intentar de nuevo?"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": h.chatbotService.Reply(req.Message)})
}
