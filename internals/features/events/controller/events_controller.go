package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/events/dto"
	"studentorg_backend/internals/features/events/model"
	helper "studentorg_backend/internals/helpers"
)

var validate = validator.New()

type EventController struct {
	DB *gorm.DB
}

func NewEventController(db *gorm.DB) *EventController {
	return &EventController{DB: db}
}

// 🟢 POST /api/a/events
func (ctrl *EventController) CreateEvent(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("[ERROR] body parser: %v", err)
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	event := req.ToModel()
	event.EventCreatedBy = &userID

	if err := ctrl.DB.Create(event).Error; err != nil {
		log.Printf("[ERROR] create event: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create event")
	}

	return helper.JsonCreated(c, "Event created", dto.ToEventResponse(event))
}

// 🟢 PUT /api/a/events/:id
func (ctrl *EventController) UpdateEvent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var event model.EventModel
	if err := ctrl.DB.Where("event_id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to load event")
	}

	var req dto.EventUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.ApplyToModel(&event); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := ctrl.DB.Save(&event).Error; err != nil {
		log.Printf("[ERROR] update event: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update event")
	}

	return helper.JsonUpdated(c, "Event updated", dto.ToEventResponse(&event))
}

// 🟢 GET /api/u/events?page=&per_page=
func (ctrl *EventController) GetAllEvents(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	var total int64
	if err := ctrl.DB.Model(&model.EventModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count events")
	}

	var events []model.EventModel
	if err := ctrl.DB.
		Order("event_date ASC").
		Limit(paging.Limit).Offset(paging.Offset).
		Find(&events).Error; err != nil {
		log.Printf("[ERROR] get events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch events")
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *dto.ToEventResponse(&events[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/u/events/:id
func (ctrl *EventController) GetEventByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	var event model.EventModel
	if err := ctrl.DB.Where("event_id = ?", id).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Event not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch event")
	}
	return helper.JsonOK(c, "", dto.ToEventResponse(&event))
}
