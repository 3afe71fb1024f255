package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/farewatch/internal/service/tracker"
)

type TrackerHandler struct {
	service tracker.TrackerUseCase
}

func NewTrackerHandler(service tracker.TrackerUseCase) *TrackerHandler {
	return &TrackerHandler{service: service}
}

func (h *TrackerHandler) Register(router gin.IRouter) {
	router.GET("/seed", h.seed)
}

func (h *TrackerHandler) seed(c *gin.Context) {
	inserted, err := h.service.Seed(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "data inserted", "count": inserted})
}
