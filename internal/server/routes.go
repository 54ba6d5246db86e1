package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Authentication
	mux.HandleFunc("/api/auth/login", s.app.AuthHandler.LoginHandler)
	mux.HandleFunc("/api/auth/logout", s.app.AuthHandler.LogoutHandler)
	mux.HandleFunc("/api/auth/me", s.app.AuthHandler.CurrentUserHandler)

	// API routes - Templates
	mux.HandleFunc("/api/templates", s.app.TemplateHandler.CollectionHandler) // GET (list), POST (upload)
	mux.HandleFunc("/api/templates/", s.app.TemplateHandler.ItemHandler)      // GET/PUT/DELETE /{id}

	// API routes - Generation jobs
	mux.HandleFunc("/api/jobs", s.app.JobHandler.ListJobsHandler)
	mux.HandleFunc("/api/jobs/single", s.app.JobHandler.CreateSingleJobHandler)
	mux.HandleFunc("/api/jobs/bulk", s.app.JobHandler.CreateBulkJobHandler)
	mux.HandleFunc("/api/jobs/", s.app.JobHandler.ItemHandler) // Handles /{id}, /{id}/documents, /{id}/fail

	// API routes - Generated documents
	mux.HandleFunc("/api/documents", s.app.DocumentHandler.ListHandler)
	mux.HandleFunc("/mock-download/", s.app.DocumentHandler.MockDownloadHandler)

	// API routes - System
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}
