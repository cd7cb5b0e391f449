package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kozydev/kozy-server/internal/api/http/handler"
	"github.com/kozydev/kozy-server/internal/api/http/middleware"
	"github.com/kozydev/kozy-server/internal/logger"
	"github.com/kozydev/kozy-server/internal/model"
)

// Router assembles the HTTP routes and middleware for the API.
type Router struct {
	authService    handler.AuthService
	fileService    handler.FileService
	tokens         model.TokenManager
	contextManager model.ContextManager
	maxUploadSize  int64
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService handler.AuthService,
	fileService handler.FileService,
	tokens model.TokenManager,
	contextManager model.ContextManager,
	maxUploadSize int64,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		fileService:    fileService,
		tokens:         tokens,
		contextManager: contextManager,
		maxUploadSize:  maxUploadSize,
		logger:         logger,
	}
}

// Register wires handlers and middleware and returns the root handler.
// Login and register stay outside the auth middleware; everything else
// requires a valid bearer token.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.contextManager, r.logger)

	authHandler := handler.NewAuth(r.authService, r.logger)
	fileHandler := handler.NewFile(r.fileService, r.maxUploadSize, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Route("/api/auth", func(api chi.Router) {
		api.Post("/login", authHandler.Login)
		api.Post("/register", authHandler.Register)

		api.Group(func(authed chi.Router) {
			authed.Use(authenticate.Handle)
			authed.Get("/", authHandler.ListUsers)
		})
	})

	mux.Route("/api/files", func(api chi.Router) {
		api.Use(authenticate.Handle)
		api.Post("/", fileHandler.Upload)
		api.Get("/", fileHandler.List)
		api.Get("/{name}", fileHandler.Download)
		api.Delete("/{name}", fileHandler.Delete)
	})

	return mux
}
