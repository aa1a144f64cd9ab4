// Package consultation assembles the consultation ranking pipeline (C1-C11)
// into an apphttp.Module.
package consultation

import (
	"portal_final_backend/internal/consultation/handler"
	apphttp "portal_final_backend/internal/http"
)

// Module implements apphttp.Module for the consultation bounded context.
type Module struct {
	handler *handler.Handler
}

func NewModule(h *handler.Handler) *Module {
	return &Module{handler: h}
}

func (m *Module) Name() string { return "consultation" }

// RegisterRoutes mounts the consultation HTTP surface directly under /api,
// not under ctx.V1's /api/v1 prefix: the consultation contract names exact
// paths (POST /api/process-audio, GET /api/communities, ...) with no
// version segment, the same way the health check already bypasses V1.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	api := ctx.Engine.Group("/api")

	api.POST("/process-audio", m.handler.ProcessAudio)
	api.POST("/process-text", m.handler.ProcessText)

	api.GET("/communities", m.handler.ListCommunities)
	api.GET("/communities/:id", m.handler.GetCommunity)
	api.POST("/communities", m.handler.CreateCommunity)
	api.PUT("/communities/:id", m.handler.UpdateCommunity)
	api.DELETE("/communities/:id", m.handler.DeleteCommunity)

	api.GET("/stats", m.handler.Stats)
}

var _ apphttp.Module = (*Module)(nil)
