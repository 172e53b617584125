// Package service holds the business logic: role checks, moderation
// visibility rules and the cache-aside merge for article listings.
package service

import (
	"context"
	"errors"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"newsroom/pkg/models"
)

// Error taxonomy. The api package maps these to HTTP status codes.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrArticleNotFound = errors.New("article not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrMissingFields   = errors.New("missing required fields")
	ErrInvalidID       = errors.New("invalid id")
)

// ArticleStore is the article half of the document store.
type ArticleStore interface {
	ListPublisherArticles(ctx context.Context, section string, approvedOnly bool) ([]models.Article, error)
	InsertArticle(ctx context.Context, a *models.Article) error
	ListPendingArticles(ctx context.Context) ([]models.Article, error)
	SetApproved(ctx context.Context, id primitive.ObjectID) (bool, error)
	DeleteArticle(ctx context.Context, id primitive.ObjectID) (bool, error)
	FindArticleByWebURL(ctx context.Context, webURL string) (*models.Article, error)
}

// CommentStore is the comment half of the document store.
type CommentStore interface {
	InsertComment(ctx context.Context, c *models.Comment) error
	ListComments(ctx context.Context, articleID string) ([]models.Comment, error)
	GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error)
	DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error)
	RedactComment(ctx context.Context, id primitive.ObjectID, text string) (bool, error)
}

// WireSearcher fetches supplementary articles from the external search API.
type WireSearcher interface {
	Search(ctx context.Context, section string) ([]models.Article, error)
}

// Service implements the article and comment operations.
type Service struct {
	articles ArticleStore
	comments CommentStore
	wire     WireSearcher
	log      *slog.Logger
}

// NewService wires the service to its store and the wire client.
func NewService(articles ArticleStore, comments CommentStore, wire WireSearcher, log *slog.Logger) *Service {
	return &Service{articles: articles, comments: comments, wire: wire, log: log}
}

func parseObjectID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return id, nil
}
