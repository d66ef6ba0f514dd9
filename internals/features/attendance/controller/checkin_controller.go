package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/attendance/dto"
	"studentorg_backend/internals/features/attendance/service"
	helper "studentorg_backend/internals/helpers"
)

var validate = validator.New()

type CheckInController struct {
	DB *gorm.DB
}

func NewCheckInController(db *gorm.DB) *CheckInController {
	return &CheckInController{DB: db}
}

// 🟢 POST /api/u/sessions/:session_id/check-in
// The student identity comes from the token, never from the body.
func (ctrl *CheckInController) CheckIn(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Credential is required")
	}

	record, err := service.CheckIn(ctrl.DB, sessionID, userID, req.Credential)
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Event session not found")
	case errors.Is(err, service.ErrSessionNotStarted):
		return helper.JsonError(c, fiber.StatusConflict, "Check-in has not started for this session")
	case errors.Is(err, service.ErrSessionFinished):
		return helper.JsonError(c, fiber.StatusConflict, "Check-in for this session has finished")
	case errors.Is(err, service.ErrInvalidToken):
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid check-in code")
	case errors.Is(err, service.ErrNotParticipant):
		return helper.JsonError(c, fiber.StatusForbidden, "Join the event before checking in")
	case errors.Is(err, service.ErrAlreadyCheckedIn):
		// Informational, not an operator failure: the desired state already holds.
		return helper.JsonError(c, fiber.StatusConflict, "Attendance already recorded")
	case err != nil:
		log.Printf("[ERROR] check-in: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Check-in failed")
	}

	return helper.JsonCreated(c, "Attendance recorded", dto.ToAttendanceRecordResponse(record))
}

// 🟢 GET /api/u/events/:event_id/my-attendance
func (ctrl *CheckInController) GetMyAttendance(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	records, err := service.ListMyAttendance(ctrl.DB, eventID, userID)
	if err != nil {
		log.Printf("[ERROR] my attendance: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	out := make([]dto.AttendanceRecordResponse, 0, len(records))
	for i := range records {
		out = append(out, *dto.ToAttendanceRecordResponse(&records[i]))
	}
	return helper.JsonOK(c, "", out)
}
