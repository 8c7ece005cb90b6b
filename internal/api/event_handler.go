package api

import (
	"net/http"

	"SportEvents/internal/model"
	"SportEvents/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// EventHandler 赛事 CRUD、状态变更与汇总接口
type EventHandler struct {
	events *service.EventsService
	logger *logrus.Logger
}

// NewEventHandler 创建 EventHandler
func NewEventHandler(events *service.EventsService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{events: events, logger: logger}
}

// PageMeta 列表分页信息
type PageMeta struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

// ListEventsResponse 列表返回体
type ListEventsResponse struct {
	Events []*model.SportEvent `json:"events"`
	Meta   PageMeta            `json:"meta"`
}

// Create 新建赛事
// POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	event, err := h.events.Create(c.Request.Context(), req)
	if err != nil {
		writeError(c, h.logger, "CreateEvent", err)
		return
	}
	c.JSON(http.StatusCreated, event)
}

// List 赛事列表
// GET /api/events?status=ACTIVE&sport=FOOTBALL&page=1&limit=10&sortDirection=ASC
func (h *EventHandler) List(c *gin.Context) {
	var filter model.EventsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		writeBindError(c, err)
		return
	}
	filter = service.NormalizeFilter(filter)

	events, total, err := h.events.FindAll(c.Request.Context(), filter)
	if err != nil {
		writeError(c, h.logger, "ListEvents", err)
		return
	}
	if events == nil {
		events = []*model.SportEvent{}
	}
	c.JSON(http.StatusOK, ListEventsResponse{
		Events: events,
		Meta: PageMeta{
			Total: total,
			Page:  filter.Page,
			Limit: filter.Limit,
			Pages: pageCount(total, filter.Limit),
		},
	})
}

// pageCount ceil(total/limit)
func pageCount(total int64, limit int) int64 {
	if limit <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}

// Summary 汇总报表
// GET /api/events/summary
func (h *EventHandler) Summary(c *gin.Context) {
	summary, err := h.events.GetSummary(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, "GetSummary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Get 赛事详情
// GET /api/events/:id
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.events.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.logger, "GetEvent", err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Update 修改赛事
// PUT /api/events/:id
func (h *EventHandler) Update(c *gin.Context) {
	var req model.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	event, err := h.events.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		writeError(c, h.logger, "UpdateEvent", err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// UpdateStatus 变更状态
// PATCH /api/events/:id/status
func (h *EventHandler) UpdateStatus(c *gin.Context) {
	var req model.UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	event, err := h.events.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		writeError(c, h.logger, "UpdateEventStatus", err)
		return
	}
	c.JSON(http.StatusOK, event)
}

// Remove 删除赛事
// DELETE /api/events/:id
func (h *EventHandler) Remove(c *gin.Context) {
	if err := h.events.Remove(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, h.logger, "RemoveEvent", err)
		return
	}
	c.Status(http.StatusNoContent)
}
