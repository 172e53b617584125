// Package api registers the HTTP routes and maps service errors to
// status codes. All bodies are JSON; errors use an "error" field.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"newsroom/internal/auth"
	"newsroom/internal/service"
)

// Pinger reports whether the document store is reachable, for the
// health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler holds shared dependencies for all HTTP handlers.
type Handler struct {
	svc  *service.Service
	auth *auth.Manager
	db   Pinger
	log  *slog.Logger

	frontendOrigin string
	apiKey         string
}

// NewHandler creates a new Handler.
func NewHandler(svc *service.Service, authMgr *auth.Manager, db Pinger, frontendOrigin, apiKey string, log *slog.Logger) *Handler {
	return &Handler{
		svc:            svc,
		auth:           authMgr,
		db:             db,
		log:            log,
		frontendOrigin: frontendOrigin,
		apiKey:         apiKey,
	}
}

// RegisterRoutes wires all endpoints onto the engine.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", h.Home)
	r.GET("/login", h.Login)
	r.GET("/authorize", h.Authorize)
	r.GET("/logout", h.Logout)
	r.GET("/healthz", h.Health)

	r.GET("/api/user", h.CurrentUser)
	r.GET("/api/key", h.APIKey)

	r.GET("/api/articles", h.ListArticles)
	r.POST("/api/articles", h.PublishArticle)
	r.GET("/api/articles/pending", h.ListPending)
	r.PATCH("/api/article/approve", h.ApproveArticle)
	r.DELETE("/api/article", h.DeleteArticle)

	r.POST("/api/comments", h.PostComment)
	r.GET("/api/comments", h.ListComments)
	r.DELETE("/api/comments", h.DeleteComment)
	r.PATCH("/api/comments", h.RedactComment)
}

// caller resolves the request's session identity.
func (h *Handler) caller(c *gin.Context) auth.Identity {
	return h.auth.CurrentUser(c.Request.Context())
}

// writeError maps a service error to its status code and JSON body.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, service.ErrArticleNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Article not found"})
	case errors.Is(err, service.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
	case errors.Is(err, service.ErrMissingFields):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing fields"})
	case errors.Is(err, service.ErrInvalidID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
	default:
		h.log.Error("request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
	}
}

// Home: GET / redirects to the frontend origin.
func (h *Handler) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, h.frontendOrigin)
}

// Login: GET /login starts the OIDC flow.
func (h *Handler) Login(c *gin.Context) {
	c.Redirect(http.StatusFound, h.auth.BeginLogin(c.Request.Context()))
}

// Authorize: GET /authorize handles the provider callback.
func (h *Handler) Authorize(c *gin.Context) {
	_, err := h.auth.CompleteLogin(c.Request.Context(), c.Query("state"), c.Query("code"))
	switch {
	case errors.Is(err, auth.ErrStateMismatch), errors.Is(err, auth.ErrNonceMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Login failed"})
	case err != nil:
		h.log.Warn("login failed", "error", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Login failed"})
	default:
		c.Redirect(http.StatusFound, "/")
	}
}

// CurrentUser: GET /api/user returns the session identity.
func (h *Handler) CurrentUser(c *gin.Context) {
	ident := h.caller(c)
	if !ident.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not logged in"})
		return
	}
	c.JSON(http.StatusOK, ident)
}

// Logout: GET /logout clears the session.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context()); err != nil {
		h.writeError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/")
}

// APIKey: GET /api/key returns the news API key the frontend uses for
// direct searches.
func (h *Handler) APIKey(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"apiKey": h.apiKey})
}

// Health: GET /healthz pings the document store.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.db.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListArticles: GET /api/articles?section=
func (h *Handler) ListArticles(c *gin.Context) {
	articles, err := h.svc.ListArticles(c.Request.Context(), c.Query("section"), h.caller(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// PublishArticle: POST /api/articles
func (h *Handler) PublishArticle(c *gin.Context) {
	var in service.PublishInput
	if err := c.BindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if _, err := h.svc.Publish(c.Request.Context(), h.caller(c), in); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Article published"})
}

// ListPending: GET /api/articles/pending
func (h *Handler) ListPending(c *gin.Context) {
	articles, err := h.svc.ListPending(c.Request.Context(), h.caller(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// ApproveArticle: PATCH /api/article/approve  body {article_id}
func (h *Handler) ApproveArticle(c *gin.Context) {
	var req struct {
		ArticleID string `json:"article_id"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	caller := h.caller(c)
	if !caller.IsModerator() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if req.ArticleID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing article_id"})
		return
	}
	if err := h.svc.Approve(c.Request.Context(), caller, req.ArticleID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article approved"})
}

// DeleteArticle: DELETE /api/article?article_id=
func (h *Handler) DeleteArticle(c *gin.Context) {
	if err := h.svc.DeleteArticle(c.Request.Context(), h.caller(c), c.Query("article_id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article deleted"})
}

// PostComment: POST /api/comments  body {article_id, text, parent_id?}
func (h *Handler) PostComment(c *gin.Context) {
	var req struct {
		ArticleID string `json:"article_id"`
		Text      string `json:"text"`
		ParentID  string `json:"parent_id"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if _, err := h.svc.PostComment(c.Request.Context(), h.caller(c), req.ArticleID, req.Text, req.ParentID); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Comment added"})
}

// ListComments: GET /api/comments?article_id=
func (h *Handler) ListComments(c *gin.Context) {
	comments, err := h.svc.ListComments(c.Request.Context(), c.Query("article_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// DeleteComment: DELETE /api/comments?id=
func (h *Handler) DeleteComment(c *gin.Context) {
	if err := h.svc.DeleteComment(c.Request.Context(), h.caller(c), c.Query("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted"})
}

// RedactComment: PATCH /api/comments  body {id, text}
func (h *Handler) RedactComment(c *gin.Context) {
	var req struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	if err := h.svc.RedactComment(c.Request.Context(), h.caller(c), req.ID, req.Text); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Redacted"})
}
