package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/upk-it/helpdesk/internal/api/dto"
	"github.com/upk-it/helpdesk/internal/service"
)

// MetricsHandler serves the admin dashboard rollup.
type MetricsHandler struct {
	service *service.MetricsService
}

// NewMetricsHandler constructs handler.
func NewMetricsHandler(metricsService *service.MetricsService) *MetricsHandler {
	return &MetricsHandler{service: metricsService}
}

// Get GET /api/admin/metrics?rangeDays=N. Malformed or missing ranges fall
// back to the default window.
func (h *MetricsHandler) Get(c *fiber.Ctx) error {
	rangeDays := service.DefaultMetricsRangeDays
	if raw := c.Query("rangeDays"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			rangeDays = parsed
		}
	}

	metrics, err := h.service.Compute(c.UserContext(), rangeDays)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": metricsResponse(metrics)})
}

func metricsResponse(m *service.Metrics) dto.MetricsResponse {
	resp := dto.MetricsResponse{
		RangeDays:       m.RangeDays,
		From:            m.From,
		To:              m.To,
		TotalTickets:    m.TotalTickets,
		ResolvedTickets: m.ResolvedTickets,
		OpenTickets:     m.OpenTickets,
		SLABreached:     m.SLABreached,
		ByStatus:        make([]dto.StatusCountResponse, 0, len(m.ByStatus)),
		ByPriority:      make([]dto.PriorityCountResponse, 0, len(m.ByPriority)),
		ByArea:          make([]dto.AreaCountResponse, 0, len(m.ByArea)),
		ByResolver:      make([]dto.ResolverCountResponse, 0, len(m.ByResolver)),
	}
	for _, sc := range m.ByStatus {
		resp.ByStatus = append(resp.ByStatus, dto.StatusCountResponse{Status: sc.Status, Count: sc.Count})
	}
	for _, pc := range m.ByPriority {
		resp.ByPriority = append(resp.ByPriority, dto.PriorityCountResponse{Priority: pc.Priority, Count: pc.Count})
	}
	for _, ac := range m.ByArea {
		resp.ByArea = append(resp.ByArea, dto.AreaCountResponse{Area: ac.Area, Count: ac.Count})
	}
	for _, rc := range m.ByResolver {
		resp.ByResolver = append(resp.ByResolver, dto.ResolverCountResponse{
			ID:    rc.ID,
			Name:  rc.Name,
			Email: rc.Email,
			Count: rc.Count,
		})
	}
	return resp
}
