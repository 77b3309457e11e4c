package handler

import (
	"time"

	"github.com/fadhilmp/usahaku-api/internal/application/service"
	"github.com/fadhilmp/usahaku-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard HTTP requests
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary handles the dashboard summary request. The period defaults to the
// current calendar month.
func (h *DashboardHandler) Summary(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if raw := c.Query("from"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			from = d
		}
	}
	if raw := c.Query("to"); raw != "" {
		if d, err := time.Parse("2006-01-02", raw); err == nil {
			to = d
		}
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), *userID, from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dashboard summary retrieved successfully", summary)
}
