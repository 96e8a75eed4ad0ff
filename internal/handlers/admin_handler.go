package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pilates_reserva/internal/middleware"
	"pilates_reserva/internal/models"
	"pilates_reserva/internal/repository"
	"pilates_reserva/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const adminPageSize = 10

type AdminHandler struct {
	classService       services.ClassService
	scheduleService    services.ScheduleService
	reservationService services.ReservationService
	userService        services.UserService
	profileService     services.ProfileService
	contactService     services.ContactService
}

func NewAdminHandler(
	classService services.ClassService,
	scheduleService services.ScheduleService,
	reservationService services.ReservationService,
	userService services.UserService,
	profileService services.ProfileService,
	contactService services.ContactService,
) *AdminHandler {
	return &AdminHandler{
		classService:       classService,
		scheduleService:    scheduleService,
		reservationService: reservationService,
		userService:        userService,
		profileService:     profileService,
		contactService:     contactService,
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recurso no encontrado."})
		return 0, false
	}
	return uint(id), true
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

// ---- Classes ----

type ClassRequest struct {
	Name        string `json:"name" binding:"required"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	StartTime   string `json:"start_time" binding:"required"`
	Capacity    int    `json:"capacity" binding:"required,min=1"`
	Instructor  string `json:"instructor" binding:"required"`
	Description string `json:"description"`
}

func (h *AdminHandler) ListClasses(c *gin.Context) {
	classes, err := h.classService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las clases."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"classes": classes})
}

func (h *AdminHandler) GetClass(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	class, err := h.classService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Clase no encontrada."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"class": class})
}

func (h *AdminHandler) CreateClass(c *gin.Context) {
	var req ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida."})
		return
	}

	class := &models.ClassSession{
		Name:        req.Name,
		Date:        date,
		StartTime:   req.StartTime,
		Capacity:    req.Capacity,
		Instructor:  req.Instructor,
		Description: req.Description,
	}
	if err := h.classService.Create(class); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Clase creada exitosamente.", "class": class})
}

func (h *AdminHandler) UpdateClass(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	class, err := h.classService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Clase no encontrada."})
		return
	}

	var req ClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida."})
		return
	}

	class.Name = req.Name
	class.Date = date
	class.StartTime = req.StartTime
	class.Capacity = req.Capacity
	class.Instructor = req.Instructor
	class.Description = req.Description
	if err := h.classService.Update(class); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Clase modificada exitosamente.", "class": class})
}

func (h *AdminHandler) DeleteClass(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.classService.GetByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Clase no encontrada."})
		return
	}
	if err := h.classService.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la clase."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Clase eliminada exitosamente."})
}

// ---- Schedule blocks ----

type ScheduleBlockRequest struct {
	Weekday    *int   `json:"weekday" binding:"required"` // Monday=0 .. Sunday=6
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	Instructor string `json:"instructor"`
	Capacity   int    `json:"capacity" binding:"required,min=1"`
	IsActive   *bool  `json:"is_active"`
}

func (h *AdminHandler) ListScheduleBlocks(c *gin.Context) {
	blocks, err := h.scheduleService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar los bloques."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocks": blocks})
}

func (h *AdminHandler) CreateScheduleBlock(c *gin.Context) {
	var req ScheduleBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	block := &models.ScheduleBlock{
		Weekday:    *req.Weekday,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Instructor: req.Instructor,
		Capacity:   req.Capacity,
		IsActive:   active,
	}
	if err := h.scheduleService.Create(block); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bloque horario creado.", "block": block})
}

func (h *AdminHandler) UpdateScheduleBlock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	block, err := h.scheduleService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bloque horario no encontrado."})
		return
	}

	var req ScheduleBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}

	block.Weekday = *req.Weekday
	block.StartTime = req.StartTime
	block.EndTime = req.EndTime
	block.Instructor = req.Instructor
	block.Capacity = req.Capacity
	if req.IsActive != nil {
		block.IsActive = *req.IsActive
	}
	if err := h.scheduleService.Update(block); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bloque horario actualizado.", "block": block})
}

func (h *AdminHandler) DeleteScheduleBlock(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.scheduleService.GetByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bloque horario no encontrado."})
		return
	}
	if err := h.scheduleService.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el bloque."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bloque horario eliminado."})
}

type GenerateClassesRequest struct {
	From         string `json:"from" binding:"required"` // YYYY-MM-DD
	To           string `json:"to" binding:"required"`   // YYYY-MM-DD
	OnlyActive   *bool  `json:"only_active"`
	SkipExisting *bool  `json:"skip_existing"`
	Name         string `json:"name"`
	Description  string `json:"description"`
}

func (h *AdminHandler) GenerateClasses(c *gin.Context) {
	var req GenerateClassesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}
	from, err := parseDate(req.From)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha 'desde' inválida."})
		return
	}
	to, err := parseDate(req.To)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha 'hasta' inválida."})
		return
	}

	params := services.GenerateParams{
		From:         from,
		To:           to,
		OnlyActive:   true,
		SkipExisting: true,
		Name:         req.Name,
		Description:  req.Description,
	}
	if req.OnlyActive != nil {
		params.OnlyActive = *req.OnlyActive
	}
	if req.SkipExisting != nil {
		params.SkipExisting = *req.SkipExisting
	}

	result, err := h.scheduleService.Generate(params)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron generar las clases."})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Generación completada.",
		"created": result.Created,
		"skipped": result.Skipped,
	})
}

// ---- Reservations ----

func (h *AdminHandler) ListReservations(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	filter := repository.ReservationFilter{
		Status:   c.DefaultQuery("f", "todas"),
		Query:    c.Query("q"),
		Page:     page,
		PageSize: adminPageSize,
	}
	reservations, total, err := h.reservationService.Search(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las reservas."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reservations": reservations,
		"total":        total,
		"page":         page,
		"page_size":    adminPageSize,
	})
}

type ReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) ChangeReservationStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}

	if err := h.reservationService.ChangeStatus(id, req.Status); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reserva no encontrada."})
		case errors.Is(err, services.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No se pudo actualizar el estado. Revisa el formulario."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el estado."})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Estado de la reserva actualizado."})
}

// ---- Users ----

func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	filter := repository.UserFilter{
		Query:    c.Query("q"),
		Estado:   c.DefaultQuery("estado", "todos"),
		Sort:     c.DefaultQuery("sort", "id"),
		Dir:      c.DefaultQuery("dir", "asc"),
		Page:     page,
		PageSize: adminPageSize,
	}
	users, total, err := h.userService.Search(filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar los usuarios."})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"users":     users,
		"total":     total,
		"page":      page,
		"page_size": adminPageSize,
	})
}

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"is_active"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}
	if req.Password != req.Password2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Las contraseñas no coinciden."})
		return
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	user := &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		IsActive:  active,
	}
	if err := h.userService.CreateUser(user, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Usuario creado correctamente.", "user": user})
}

type UpdateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email" binding:"required,email"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"is_active" binding:"required"`
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa los datos del formulario."})
		return
	}

	update := services.UserUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      req.Role,
		IsActive:  *req.IsActive,
	}
	user, err := h.userService.UpdateUser(middleware.UserID(c), id, update)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado."})
		case errors.Is(err, services.ErrSuperuserImmutable):
			c.JSON(http.StatusForbidden, gin.H{"error": "No está permitido editar al superusuario."})
		case errors.Is(err, services.ErrSelfDeactivate):
			c.JSON(http.StatusConflict, gin.H{"error": "No puedes desactivarte a ti mismo."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el usuario."})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Usuario actualizado correctamente.", "user": user})
}

func (h *AdminHandler) ToggleUserActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.userService.ToggleActive(middleware.UserID(c), id)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado."})
		case errors.Is(err, services.ErrSuperuserImmutable):
			c.JSON(http.StatusForbidden, gin.H{"error": "No está permitido (des)activar al superusuario."})
		case errors.Is(err, services.ErrSelfDeactivate):
			c.JSON(http.StatusConflict, gin.H{"error": "No puedes desactivarte a ti mismo."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el usuario."})
		}
		return
	}

	msg := "Usuario desactivado correctamente."
	if user.IsActive {
		msg = "Usuario activado correctamente."
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "user": user})
}

// ---- Profiles ----

type ProfileRequest struct {
	UserID          uint   `json:"user_id" binding:"required"`
	GivenName       string `json:"given_name" binding:"required"`
	PaternalSurname string `json:"paternal_surname" binding:"required"`
	MaternalSurname string `json:"maternal_surname"`
	RUT             string `json:"rut" binding:"required"`
	Address         string `json:"address"`
	Phone           string `json:"phone"`
}

func (h *AdminHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar los perfiles."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"profiles": profiles})
}

func (h *AdminHandler) CreateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}

	profile := &models.Profile{
		UserID:          req.UserID,
		GivenName:       req.GivenName,
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
		RUT:             req.RUT,
		Address:         req.Address,
		Phone:           req.Phone,
	}
	if err := h.profileService.Create(profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Perfil creado correctamente.", "profile": profile})
}

func (h *AdminHandler) UpdateProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	profile, err := h.profileService.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Perfil no encontrado."})
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}

	profile.UserID = req.UserID
	profile.GivenName = req.GivenName
	profile.PaternalSurname = req.PaternalSurname
	profile.MaternalSurname = req.MaternalSurname
	profile.RUT = req.RUT
	profile.Address = req.Address
	profile.Phone = req.Phone
	if err := h.profileService.Update(profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Perfil actualizado correctamente.", "profile": profile})
}

func (h *AdminHandler) DeleteProfile(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if _, err := h.profileService.GetByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Perfil no encontrado."})
		return
	}
	if err := h.profileService.Delete(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar el perfil."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Perfil eliminado correctamente."})
}

// ---- Contact inbox ----

func (h *AdminHandler) ListContacts(c *gin.Context) {
	messages, err := h.contactService.List(c.DefaultQuery("estado", "todos"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar los mensajes."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

type ContactTriageRequest struct {
	Status  string `json:"status" binding:"required"`
	Comment string `json:"comment"`
}

func (h *AdminHandler) TriageContact(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req ContactTriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Revisa el formulario."})
		return
	}

	message, err := h.contactService.Triage(id, req.Status, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Mensaje no encontrado."})
		case errors.Is(err, services.ErrInvalidContactStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el mensaje."})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Mensaje actualizado.", "contact": message})
}
