package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studentorg_backend/internals/features/attendance/service"
	helper "studentorg_backend/internals/helpers"
)

type AttendanceAdminController struct {
	DB *gorm.DB
}

func NewAttendanceAdminController(db *gorm.DB) *AttendanceAdminController {
	return &AttendanceAdminController{DB: db}
}

// 🟢 GET /api/a/sessions/:id/attendance?page=&per_page=
func (ctrl *AttendanceAdminController) GetSessionAttendance(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}
	paging := helper.ResolvePaging(c, 20, 100)

	entries, total, err := service.ListSessionAttendance(ctrl.DB, sessionID, paging.Offset, paging.Limit)
	if err != nil {
		log.Printf("[ERROR] session attendance: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch attendance")
	}

	return helper.JsonList(c, "", entries, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}

// 🟢 GET /api/a/sessions/:id/attendance/count
func (ctrl *AttendanceAdminController) GetSessionAttendanceCount(c *fiber.Ctx) error {
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session ID")
	}

	total, err := service.CountSessionAttendance(ctrl.DB, sessionID)
	if err != nil {
		log.Printf("[ERROR] attendance count: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count attendance")
	}

	return helper.JsonOK(c, "", fiber.Map{
		"event_session_id": sessionID,
		"total":            total,
	})
}

// 🟢 GET /api/a/events/:event_id/attendance/search?q=&page=&per_page=
func (ctrl *AttendanceAdminController) SearchEventAttendance(c *fiber.Ctx) error {
	eventID, err := uuid.Parse(c.Params("event_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid event ID")
	}
	query := c.Query("q")
	paging := helper.ResolvePaging(c, 20, 100)

	entries, total, err := service.SearchEventAttendance(ctrl.DB, eventID, query, paging.Offset, paging.Limit)
	if err != nil {
		log.Printf("[ERROR] attendance search: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to search attendance")
	}

	return helper.JsonList(c, "", entries, helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage))
}
