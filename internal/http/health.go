package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status      string `json:"status" example:"OK"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment" example:"development"`
}

// HealthController reports liveness only. It never checks the database, so a
// degraded store still answers OK.
type HealthController struct {
	environment string
	now         func() time.Time
}

func NewHealthController(environment string) *HealthController {
	return &HealthController{
		environment: environment,
		now:         time.Now,
	}
}

// Status godoc
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	HealthResponse
//	@Router		/health [get]
func (h *HealthController) Status(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:      "OK",
		Timestamp:   h.now().UTC().Format(time.RFC3339Nano),
		Environment: h.environment,
	})
}
