// Package httpapi exposes the note authority over HTTP. The routes and
// payload shapes are the contract the client's remote package codes
// against.
package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/notechain/notechain/internal/logging"
	"github.com/notechain/notechain/internal/server/auth"
	"github.com/notechain/notechain/internal/server/notes"
	"github.com/notechain/notechain/internal/server/users"
)

type handler struct {
	notes         *notes.Store
	users         *users.Store
	secret        []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

type notePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type credentialsPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handler) ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}

func (h *handler) listNotes(c *gin.Context) {
	owner := c.GetString(principalKey)
	c.JSON(http.StatusOK, gin.H{"notes": h.notes.ListByOwner(owner)})
}

func (h *handler) getNote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found."})
		return
	}

	note, err := h.notes.GetByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found."})
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}

func (h *handler) createNote(c *gin.Context) {
	var payload notePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	owner := c.GetString(principalKey)
	id, err := h.notes.Create(owner, payload.Title, payload.Content)
	if err != nil {
		h.writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *handler) updateNote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found."})
		return
	}

	var payload notePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	caller := c.GetString(principalKey)
	if err := h.notes.Update(id, caller, payload.Title, payload.Content); err != nil {
		h.writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *handler) deleteNote(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found."})
		return
	}

	caller := c.GetString(principalKey)
	if err := h.notes.Delete(id, caller); err != nil {
		h.writeNoteError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *handler) writeNoteError(c *gin.Context, err error) {
	var validation *notes.ValidationError
	var forbidden *notes.ForbiddenError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Msg})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": forbidden.Msg})
	case errors.Is(err, notes.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Note not found."})
	default:
		h.logger.Error(c.Request.Context(), "note operation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (h *handler) register(c *gin.Context) {
	var payload credentialsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	principal, err := h.users.Register(payload.Username, []byte(payload.Password))
	if err != nil {
		switch {
		case errors.Is(err, users.ErrExists):
			c.JSON(http.StatusConflict, gin.H{"error": "username already taken"})
		case errors.Is(err, users.ErrInvalidCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		default:
			h.logger.Error(c.Request.Context(), "registration failed", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}

	h.issueToken(c, principal)
}

func (h *handler) login(c *gin.Context) {
	var payload credentialsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	principal, err := h.users.Verify(payload.Username, []byte(payload.Password))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	h.issueToken(c, principal)
}

func (h *handler) issueToken(c *gin.Context, principal string) {
	token, err := auth.GenerateToken(principal, h.secret, h.tokenValidity)
	if err != nil {
		h.logger.Error(c.Request.Context(), "token generation failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
