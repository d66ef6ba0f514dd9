package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"studentorg_backend/internals/features/events/dto"
	"studentorg_backend/internals/features/events/model"
	"studentorg_backend/internals/features/events/service"
	helper "studentorg_backend/internals/helpers"
)

type EventParticipantController struct {
	DB *gorm.DB
}

func NewEventParticipantController(db *gorm.DB) *EventParticipantController {
	return &EventParticipantController{DB: db}
}

// 🟢 POST /api/u/events/:event_id/join
func (ctrl *EventParticipantController) JoinEvent(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
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
	if event.EventStatus == model.EventCancelled || event.EventStatus == model.EventFinished {
		return helper.JsonError(c, fiber.StatusConflict, "This event is no longer open for joining")
	}

	participant := model.EventParticipantModel{
		EventParticipantEventID: eventID,
		EventParticipantUserID:  userID,
	}
	res := ctrl.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_participant_event_id"}, {Name: "event_participant_user_id"}},
		DoNothing: true,
	}).Create(&participant)
	if res.Error != nil {
		log.Printf("[ERROR] join event: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to join event")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusConflict, "You already joined this event")
	}

	return helper.JsonCreated(c, "Joined event", dto.ToEventParticipantResponse(&participant))
}

// 🟢 DELETE /api/u/events/:event_id/leave
// Leaving is a withdrawal: the join record is removed, not flagged.
func (ctrl *EventParticipantController) LeaveEvent(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}

	res := ctrl.DB.
		Where("event_participant_event_id = ? AND event_participant_user_id = ?", eventID, userID).
		Delete(&model.EventParticipantModel{})
	if res.Error != nil {
		log.Printf("[ERROR] leave event: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to leave event")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "You have not joined this event")
	}

	return helper.JsonDeleted(c, "Left event", nil)
}

// 🟢 GET /api/u/my-events
func (ctrl *EventParticipantController) GetMyEvents(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 10, 100)

	events, total, err := service.ListJoinedEvents(ctrl.DB, userID, paging.Offset, paging.Limit)
	if err != nil {
		log.Printf("[ERROR] get my events: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch joined events")
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, *dto.ToEventResponse(&events[i]))
	}
	return helper.JsonList(c, "", out, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
