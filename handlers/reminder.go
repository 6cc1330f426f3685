package handlers

import (
	"net/http"

	"verdant/middleware"
	"verdant/models"
	"verdant/services/reminder"
	"verdant/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReminderHandler exposes the reminder lifecycle endpoints.
type ReminderHandler struct {
	ReminderService reminder.ReminderService
}

func NewReminderHandler(svc reminder.ReminderService) *ReminderHandler {
	return &ReminderHandler{ReminderService: svc}
}

func callerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return userID, ok
}

// CreateReminderHandler handles POST /api/reminders.
func (h *ReminderHandler) CreateReminderHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.ReminderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rem, err := h.ReminderService.CreateReminder(userID, req)
	if err != nil {
		utils.GetLogger().Warn("Reminder create rejected", zap.String("userID", userID), zap.Error(err))
		status := utils.StatusForError(err)
		if status == http.StatusInternalServerError {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, rem)
}

// ListRemindersHandler handles GET /api/reminders.
func (h *ReminderHandler) ListRemindersHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	reminders, err := h.ReminderService.ListReminders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	c.JSON(http.StatusOK, reminders)
}

// UpcomingRemindersHandler handles GET /api/reminders/upcoming.
func (h *ReminderHandler) UpcomingRemindersHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	reminders, err := h.ReminderService.UpcomingReminders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	c.JSON(http.StatusOK, reminders)
}

// DueRemindersHandler handles GET /api/reminders/due.
func (h *ReminderHandler) DueRemindersHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	reminders, err := h.ReminderService.DueReminders(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if reminders == nil {
		reminders = []models.Reminder{}
	}
	c.JSON(http.StatusOK, reminders)
}

// UpdateReminderHandler handles PUT /api/reminders/:id.
func (h *ReminderHandler) UpdateReminderHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.ReminderUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rem, err := h.ReminderService.UpdateReminder(userID, c.Param("id"), req)
	if err != nil {
		c.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rem)
}

// CompleteReminderHandler handles PUT /api/reminders/:id/complete.
func (h *ReminderHandler) CompleteReminderHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	rem, err := h.ReminderService.CompleteReminder(userID, c.Param("id"))
	if err != nil {
		c.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rem)
}

// SnoozeReminderHandler handles PUT /api/reminders/:id/snooze.
func (h *ReminderHandler) SnoozeReminderHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var req models.SnoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rem, err := h.ReminderService.SnoozeReminder(userID, c.Param("id"), req.Minutes)
	if err != nil {
		c.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rem)
}

// MarkNotifiedHandler handles PUT /api/reminders/:id/notified.
func (h *ReminderHandler) MarkNotifiedHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.ReminderService.MarkNotificationSent(userID, c.Param("id")); err != nil {
		c.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification recorded"})
}

// DeleteReminderHandler handles DELETE /api/reminders/:id.
func (h *ReminderHandler) DeleteReminderHandler(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	if err := h.ReminderService.DeleteReminder(userID, c.Param("id")); err != nil {
		c.JSON(utils.StatusForError(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder deleted"})
}
