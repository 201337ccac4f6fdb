package httpapi

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/notechain/notechain/internal/logging"
	"github.com/notechain/notechain/internal/server/notes"
	"github.com/notechain/notechain/internal/server/users"
)

// NewRouter wires the API routes. Reading a single note stays public so
// shared note links resolve without credentials.
func NewRouter(noteStore *notes.Store, userStore *users.Store, secret []byte,
	tokenValidity time.Duration, logger logging.Logger) *gin.Engine {

	h := &handler{
		notes:         noteStore,
		users:         userStore,
		secret:        secret,
		tokenValidity: tokenValidity,
		logger:        logger,
	}

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/v1")
	api.GET("/ping", h.ping)
	api.GET("/notes/:id", h.getNote)
	api.POST("/identity/register", h.register)
	api.POST("/identity/login", h.login)

	authed := api.Group("")
	authed.Use(RequireIdentity(secret))
	authed.GET("/notes", h.listNotes)
	authed.POST("/notes", h.createNote)
	authed.PUT("/notes/:id", h.updateNote)
	authed.DELETE("/notes/:id", h.deleteNote)

	return r
}
