package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"skypass/internal/models"
	"skypass/internal/service"
	"skypass/internal/session"
	"skypass/internal/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// writePassWorkbook is replaced in tests.
var writePassWorkbook = utils.WritePassWorkbook

type SessionHandler struct {
	store       *session.Store
	satelliteID string
	displayLoc  *time.Location
}

func NewSessionHandler(store *session.Store, satelliteID string, displayLoc *time.Location) *SessionHandler {
	if displayLoc == nil {
		displayLoc = time.Local
	}
	return &SessionHandler{
		store:       store,
		satelliteID: satelliteID,
		displayLoc:  displayLoc,
	}
}

// Register mounts the session routes. outbound guards the routes that call
// remote services.
func (h *SessionHandler) Register(api *gin.RouterGroup, outbound ...gin.HandlerFunc) {
	sessions := api.Group("/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.DeleteSession)
	sessions.PUT("/:id/coordinates/:field", h.SetCoordinate)
	sessions.GET("/:id/passes/export", h.ExportPasses)

	guarded := sessions.Group("", outbound...)
	guarded.POST("/:id/location", h.UseDeviceLocation)
	guarded.POST("/:id/predict", h.Predict)
}

type setCoordinateRequest struct {
	Text *string `json:"text" binding:"required"`
}

func (h *SessionHandler) CreateSession(c *gin.Context) {
	s := h.store.Create()
	c.JSON(http.StatusCreated, s.Snapshot(h.displayLoc))
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	s, loc, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot(loc))
}

func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if !h.store.Delete(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) SetCoordinate(c *gin.Context) {
	s, loc, ok := h.lookup(c)
	if !ok {
		return
	}

	field, err := models.ParseField(c.Param("field"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid field",
			"message": err.Error(),
		})
		return
	}

	var req setCoordinateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"message": err.Error(),
		})
		return
	}

	s.SetField(field, *req.Text)
	c.JSON(http.StatusOK, s.Snapshot(loc))
}

func (h *SessionHandler) UseDeviceLocation(c *gin.Context) {
	s, loc, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := s.UseDeviceLocation(c.Request.Context()); err != nil {
		status := http.StatusServiceUnavailable
		switch {
		case errors.Is(err, models.ErrRequestInFlight):
			status = http.StatusConflict
		case errors.Is(err, models.ErrPermissionDenied):
			status = http.StatusForbidden
		}
		h.fail(c, status, "failed to get device location", err, s.Snapshot(loc))
		return
	}

	c.JSON(http.StatusOK, s.Snapshot(loc))
}

func (h *SessionHandler) Predict(c *gin.Context) {
	s, loc, ok := h.lookup(c)
	if !ok {
		return
	}

	if err := s.Predict(c.Request.Context()); err != nil {
		var coordErr *models.CoordinateError
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, models.ErrRequestInFlight):
			status = http.StatusConflict
		case errors.As(err, &coordErr):
			status = http.StatusUnprocessableEntity
		}
		h.fail(c, status, "failed to predict passes", err, s.Snapshot(loc))
		return
	}

	c.JSON(http.StatusOK, s.Snapshot(loc))
}

func (h *SessionHandler) ExportPasses(c *gin.Context) {
	s, loc, ok := h.lookup(c)
	if !ok {
		return
	}

	coordinate, passes := s.ExportData()
	export := utils.PassExport{
		SatelliteID: h.satelliteID,
		Coordinate:  coordinate,
		Passes:      passes,
		Location:    loc,
		GeneratedAt: time.Now(),
	}

	var buf bytes.Buffer
	if err := writePassWorkbook(&buf, export); err != nil {
		log.Printf("Pass export failed for session %s: %v", s.ID(), err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "export failed",
			"message": "Failed to build pass workbook",
		})
		return
	}

	filename := fmt.Sprintf("passes-%s-%s.xlsx", h.satelliteID, time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *SessionHandler) lookup(c *gin.Context) (*session.Session, *time.Location, bool) {
	loc := h.displayLoc
	if tz := c.Query("tz"); tz != "" {
		l, err := time.LoadLocation(tz)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid time zone",
				"message": err.Error(),
			})
			return nil, nil, false
		}
		loc = l
	}

	s, ok := h.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return nil, nil, false
	}
	return s, loc, true
}

func (h *SessionHandler) fail(c *gin.Context, status int, msg string, err error, snap models.Snapshot) {
	body := gin.H{
		"error":   msg,
		"message": err.Error(),
		"session": snap,
	}
	if n, ok := service.NotificationFor(err); ok {
		body["notification"] = n
	}
	c.JSON(status, body)
}
