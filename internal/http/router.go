package http

import (
	"net/http"

	"github.com/aandrewjuan1/planner-api/internal/http/handler"
	"github.com/aandrewjuan1/planner-api/internal/service"
)

// Services bundles everything the router mounts.
type Services struct {
	Auth        *service.AuthService
	Tasks       *service.TaskService
	Events      *service.EventService
	Occurrences *service.OccurrenceService
	Projects    *service.ProjectService
	Tags        *service.TagService
	Feed        *service.FeedService
}

func NewRouter(svcs Services) http.Handler {
	mux := http.NewServeMux()

	// Health check - intentionally outside /api/v1 for ALB health check compatibility
	health := handler.NewHealthHandler()
	mux.Handle("/health", health)

	// Auth endpoints are only mounted when an identity provider is configured.
	if svcs.Auth != nil {
		authHandler := handler.NewAuthHandler(svcs.Auth)
		mux.Handle("/api/v1/auth/", authHandler)
	}

	taskHandler := handler.NewTaskHandler(svcs.Tasks, svcs.Occurrences)
	mux.Handle("/api/v1/tasks", taskHandler)
	mux.Handle("/api/v1/tasks/", taskHandler)

	eventHandler := handler.NewEventHandler(svcs.Events, svcs.Occurrences)
	mux.Handle("/api/v1/events", eventHandler)
	mux.Handle("/api/v1/events/", eventHandler)

	projectHandler := handler.NewProjectHandler(svcs.Projects)
	mux.Handle("/api/v1/projects", projectHandler)
	mux.Handle("/api/v1/projects/", projectHandler)

	tagHandler := handler.NewTagHandler(svcs.Tags)
	mux.Handle("/api/v1/tags", tagHandler)
	mux.Handle("/api/v1/tags/", tagHandler)

	feedHandler := handler.NewFeedHandler(svcs.Feed)
	mux.Handle("/api/v1/feed", feedHandler)

	return mux
}
