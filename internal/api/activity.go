// Package api provides the HTTP handlers for the activity-log service.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/coopsuite/activity-log-ms/internal/models"
)

// ActivityLogHandler serves the activity-log endpoints.
type ActivityLogHandler struct {
	querier ActivityLogQuerier
	sink    EventSink
	log     *logrus.Logger
}

// NewActivityLogHandler creates an ActivityLogHandler.
func NewActivityLogHandler(querier ActivityLogQuerier, sink EventSink, log *logrus.Logger) *ActivityLogHandler {
	return &ActivityLogHandler{querier: querier, sink: sink, log: log}
}

// Ingest handles POST /api/v1/activity-logs/events.
//
// The event is accepted and queued; persistence happens asynchronously
// and its outcome is never reported to the caller.
func (h *ActivityLogHandler) Ingest(c *gin.Context) {
	var ev models.ActivityLogEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid event payload: "+err.Error())

		return
	}

	h.sink.Enqueue(&ev)
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}

// Search handles POST /api/v1/activity-logs/search.
func (h *ActivityLogHandler) Search(c *gin.Context) {
	var f models.ActivityLogFilter
	if err := c.ShouldBindJSON(&f); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid filter payload: "+err.Error())

		return
	}

	page, err := h.querier.Search(c.Request.Context(), &f)
	if err != nil {
		h.logQueryFailure(c, err, "activity log search failed")
		respondServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/v1/activity-logs/:id.
func (h *ActivityLogHandler) Get(c *gin.Context) {
	detail, err := h.querier.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logQueryFailure(c, err, "activity log lookup failed")
		respondServiceError(c, err)

		return
	}

	c.JSON(http.StatusOK, detail)
}

// logQueryFailure logs unexpected failures only: validation errors and
// not-found outcomes are expected caller-facing results, not faults.
func (h *ActivityLogHandler) logQueryFailure(c *gin.Context, err error, msg string) {
	if isExpectedError(err) {
		return
	}

	h.log.WithError(err).WithField("path", c.Request.URL.Path).Error(msg)
}
