package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/farewatch/internal/domain"
	"github.com/zvrva/farewatch/internal/service/flights"
)

type FlightHandler struct {
	service flights.FlightUseCase
}

type createFlightRequest struct {
	Route     string     `json:"route" binding:"required"`
	Airline   string     `json:"airline"`
	Price     float64    `json:"price" binding:"required,gt=0"`
	Timestamp *time.Time `json:"timestamp"`
}

type updateFlightRequest struct {
	Route     *string    `json:"route"`
	Airline   *string    `json:"airline"`
	Price     *float64   `json:"price"`
	Timestamp *time.Time `json:"timestamp"`
}

type flightResponse struct {
	ID        string  `json:"id"`
	Route     string  `json:"route"`
	Airline   string  `json:"airline,omitempty"`
	Price     float64 `json:"price"`
	Timestamp string  `json:"timestamp"`
}

func NewFlightHandler(service flights.FlightUseCase) *FlightHandler {
	return &FlightHandler{service: service}
}

func (h *FlightHandler) Register(router gin.IRouter) {
	router.GET("/flights", h.list)
	router.GET("/flight/:id", h.get)
	router.POST("/flight", h.create)
	router.PUT("/flight/:id", h.update)
	router.DELETE("/flight/:id", h.delete)
	router.GET("/time-series", h.timeSeries)
	router.GET("/search", h.search)
}

func (h *FlightHandler) list(c *gin.Context) {
	list, err := h.service.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponses(list))
}

func (h *FlightHandler) get(c *gin.Context) {
	flight, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) create(c *gin.Context) {
	var req createFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Create(c.Request.Context(), flights.CreateFlightInput{
		Route:     req.Route,
		Airline:   req.Airline,
		Price:     req.Price,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toFlightResponse(flight))
}

func (h *FlightHandler) update(c *gin.Context) {
	var req updateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	flight, err := h.service.Update(c.Request.Context(), c.Param("id"), domain.PatchFlight{
		Route:     req.Route,
		Airline:   req.Airline,
		Price:     req.Price,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toFlightResponse(flight))
}

func (h *FlightHandler) delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func (h *FlightHandler) timeSeries(c *gin.Context) {
	route := c.Query("route")
	if route == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "route is required"})
		return
	}

	list, err := h.service.TimeSeries(c.Request.Context(), route)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"route": route, "data": toFlightResponses(list)})
}

func (h *FlightHandler) search(c *gin.Context) {
	q := c.Query("q")

	var maxPrice *float64
	if raw := c.Query("maxPrice"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "maxPrice must be a number"})
			return
		}
		maxPrice = &parsed
	}

	list, err := h.service.Search(c.Request.Context(), q, maxPrice)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(list), "data": toFlightResponses(list)})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrInvalidID), errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func toFlightResponse(f *domain.Flight) flightResponse {
	return flightResponse{
		ID:        f.ID.Hex(),
		Route:     f.Route,
		Airline:   f.Airline,
		Price:     f.Price,
		Timestamp: f.Timestamp.Format(time.RFC3339),
	}
}

func toFlightResponses(list []domain.Flight) []flightResponse {
	out := make([]flightResponse, 0, len(list))
	for i := range list {
		out = append(out, toFlightResponse(&list[i]))
	}
	return out
}
