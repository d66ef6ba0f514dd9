package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/events/dto"
	"studentorg_backend/internals/features/events/model"
	"studentorg_backend/internals/features/events/service"
	helper "studentorg_backend/internals/helpers"
)

type EventSessionController struct {
	DB *gorm.DB
}

func NewEventSessionController(db *gorm.DB) *EventSessionController {
	return &EventSessionController{DB: db}
}

// 🟢 POST /api/a/events/:event_id/sessions
func (ctrl *EventSessionController) CreateEventSession(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var event model.EventModel
	if err := ctrl.DB.Where("event_id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load event")
	}

	var req dto.EventSessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ERROR] body parser: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := dto.ValidateTimeOfDay(req.EventSessionStartTime); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := dto.ValidateTimeOfDay(req.EventSessionEndTime); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if req.EventSessionEndTime <= req.EventSessionStartTime {
		return helper.JsonError(c, fiber.StatusBadRequest, "End time must be after start time")
	}

	session := req.ToModel(eventID)
	if err := ctrl.DB.Create(session).Error; err != nil {
		log.Printf("[ERROR] create session: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event session")
	}

	return helper.JsonCreated(c, "Event session created", dto.ToEventSessionResponse(session))
}

// 🟢 PUT /api/a/sessions/:id
func (ctrl *EventSessionController) UpdateEventSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var session model.EventSessionModel
	if err := ctrl.DB.Where("event_session_id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event session not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load event session")
	}

	var req dto.EventSessionUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.ApplyToModel(&session)

	if req.EventSessionStartTime != nil {
		if err := dto.ValidateTimeOfDay(*req.EventSessionStartTime); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}
	if req.EventSessionEndTime != nil {
		if err := dto.ValidateTimeOfDay(*req.EventSessionEndTime); err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
	}
	if session.EventSessionEndTime <= session.EventSessionStartTime {
		return helper.JsonError(c, fiber.StatusBadRequest, "End time must be after start time")
	}

	if err := ctrl.DB.Save(&session).Error; err != nil {
		log.Printf("[ERROR] update session: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event session")
	}

	return helper.JsonUpdated(c, "Event session updated", dto.ToEventSessionResponse(&session))
}

// 🟢 GET /api/u/events/:event_id/sessions
// An event with no sessions returns an empty list, not an error.
func (ctrl *EventSessionController) GetSessionsByEvent(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}
	paging := helper.ResolvePaging(c, 10, 100)

	var total int64
	if err := ctrl.DB.
		Model(&model.EventSessionModel{}).
		Where("event_session_event_id = ?", eventID).
		Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count event sessions")
	}

	var sessions []model.EventSessionModel
	if err := ctrl.DB.
		Where("event_session_event_id = ?", eventID).
		Order("event_session_date ASC, event_session_start_time ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&sessions).Error; err != nil {
		log.Printf("[ERROR] get sessions: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event sessions")
	}

	out := make([]dto.EventSessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, *dto.ToEventSessionResponse(&sessions[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 PATCH /api/a/sessions/:id/status
// Rejected with an explanation (never a generic 500) once the session is
// COMPLETED.
func (ctrl *EventSessionController) SetSessionStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	var req dto.SessionStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	target, err := model.ParseSessionStatus(req.EventSessionStatus)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	session, err := service.TransitionSession(ctrl.DB, id, target)
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Event session not found")
	case errors.Is(err, service.ErrSessionCompleted):
		return helper.JsonError(c, fiber.StatusConflict, "Session is already completed; its status can no longer change")
	case err != nil:
		log.Printf("[ERROR] transition session: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update session status")
	}

	return helper.JsonUpdated(c, "Session status updated", dto.ToEventSessionResponse(session))
}

// 🟢 GET /api/a/sessions/:id/token
// Idempotent while the session stays ACTIVE; the same code is returned for
// the whole scanning period.
func (ctrl *EventSessionController) GetSessionToken(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	token, err := service.IssueOrFetchToken(ctrl.DB, id)
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Event session not found")
	case err != nil:
		log.Printf("[ERROR] issue token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue check-in token")
	}

	return helper.JsonOK(c, "", dto.SessionTokenResponse{
		EventSessionID: id,
		CheckinToken:   token,
		CheckinLink:    service.TokenDeepLink(token),
	})
}
