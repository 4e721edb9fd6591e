package server

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	v1 "github.com/gosuda/taskboard/internal/api/v1"
	"github.com/gosuda/taskboard/internal/api/ws"
)

func registerAuthRoutes(api huma.API, deps Deps) {
	v1.RegisterAuthRoutes(api, deps.Auth)
}

func registerAPIRoutes(api huma.API, deps Deps) {
	v1.RegisterMeRoutes(api, deps.Store)
	v1.RegisterProjectRoutes(api, deps.Store)
	v1.RegisterMemberRoutes(api, deps.Store, deps.Sink)
	v1.RegisterStatusRoutes(api, deps.Store)
	v1.RegisterTaskRoutes(api, deps.Store, deps.Fanout, deps.Sink)
	v1.RegisterCommentRoutes(api, deps.Store, deps.Fanout, deps.Sink)
	v1.RegisterNotificationRoutes(api, deps.Sink)
	v1.RegisterWebhookRoutes(api, deps.Store)
}

func registerWSRoutes(r chi.Router, deps Deps) {
	handler := ws.NewHandler(deps.Store.Members(), deps.Registry)
	r.Get("/projects/{projectID}", handler.Serve)
	r.Post("/projects/{projectID}/broadcast", handler.Broadcast)
}
