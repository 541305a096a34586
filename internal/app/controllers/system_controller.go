package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/coachcenter/internal/app/models/dto"
	"github.com/yigit/coachcenter/internal/pkg/geolocation"
	"github.com/yigit/coachcenter/internal/pkg/logger"
)

// BannerMessage is served at the root path.
const BannerMessage = "Coaching Center API is running..."

// Locator resolves a client IP to a location
type Locator interface {
	Lookup(ctx context.Context, ip string) (*geolocation.Location, error)
}

// Pinger reports database health
type Pinger interface {
	Ping(ctx context.Context) error
}

// SystemController serves the banner, health and location endpoints
type SystemController struct {
	locator Locator
	db      Pinger
}

// NewSystemController creates a new SystemController
func NewSystemController(locator Locator, db Pinger) *SystemController {
	return &SystemController{locator: locator, db: db}
}

// Banner godoc
// @Summary API banner
// @Tags system
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func (sc *SystemController) Banner(c *gin.Context) {
	c.String(http.StatusOK, BannerMessage)
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /health [get]
func (sc *SystemController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := sc.db.Ping(ctx); err != nil {
		logger.Error().Err(err).Msg("Health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

// GetLocation resolves the caller's IP. A failed lookup still answers with the IP.
// @Summary Caller location
// @Tags system
// @Produce json
// @Success 200 {object} dto.APIResponse{data=geolocation.Location}
// @Router /get-location [get]
func (sc *SystemController) GetLocation(c *gin.Context) {
	ip := c.ClientIP()

	location, err := sc.locator.Lookup(c.Request.Context(), ip)
	if err != nil {
		logger.Warn().Err(err).Str("ip", ip).Msg("Location lookup failed")
		c.JSON(http.StatusOK, dto.NewDataResponse(gin.H{"ip": ip}))
		return
	}

	c.JSON(http.StatusOK, dto.NewDataResponse(location))
}
