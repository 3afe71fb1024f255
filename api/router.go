package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/farewatch/internal/service/flights"
	"github.com/zvrva/farewatch/internal/service/tracker"
)

func NewRouter(flightSvc flights.FlightUseCase, trackerSvc tracker.TrackerUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), RequestID())

	NewFlightHandler(flightSvc).Register(router)
	NewTrackerHandler(trackerSvc).Register(router)
	registerDocs(router)

	router.GET("/", index)

	return router
}

func index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "farewatch",
		"endpoints": []string{
			"GET /flights",
			"GET /flight/:id",
			"POST /flight",
			"PUT /flight/:id",
			"DELETE /flight/:id",
			"GET /time-series?route=LHE-BKK",
			"GET /search?q=LHE&maxPrice=600",
			"GET /seed",
			"GET /docs",
		},
	})
}
