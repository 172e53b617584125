// Package store implements the document store access layer on MongoDB.
// Two collections exist: articles and comments. Single-document writes
// are the only atomicity the system relies on; concurrent mutations of
// the same record are last-write-wins.
package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"newsroom/pkg/models"
)

// MongoStore provides article and comment persistence.
type MongoStore struct {
	client   *mongo.Client
	articles *mongo.Collection
	comments *mongo.Collection
}

// NewMongoStore wraps a connected client. The database name comes from
// configuration, not from the connection string.
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	db := client.Database(database)
	return &MongoStore{
		client:   client,
		articles: db.Collection("articles"),
		comments: db.Collection("comments"),
	}
}

// Ping reports whether the primary is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// ListPublisherArticles returns articles without a web_url field,
// optionally narrowed to approved ones and to a section (case-insensitive
// substring match), newest cache timestamp first.
func (s *MongoStore) ListPublisherArticles(ctx context.Context, section string, approvedOnly bool) ([]models.Article, error) {
	filter := bson.M{"web_url": bson.M{"$exists": false}}
	if section != "" {
		filter["section_name"] = primitive.Regex{Pattern: section, Options: "i"}
	}
	if approvedOnly {
		filter["approved"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "cached_at", Value: -1}})
	cur, err := s.articles.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find publisher articles: %w", err)
	}

	out := []models.Article{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode publisher articles: %w", err)
	}
	return out, nil
}

// InsertArticle stores a new article and fills in its assigned ID.
func (s *MongoStore) InsertArticle(ctx context.Context, a *models.Article) error {
	res, err := s.articles.InsertOne(ctx, a)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		a.ID = id
	}
	return nil
}

// ListPendingArticles returns all unapproved articles.
func (s *MongoStore) ListPendingArticles(ctx context.Context) ([]models.Article, error) {
	cur, err := s.articles.Find(ctx, bson.M{"approved": false})
	if err != nil {
		return nil, fmt.Errorf("find pending articles: %w", err)
	}
	out := []models.Article{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode pending articles: %w", err)
	}
	return out, nil
}

// SetApproved flips the approved flag in one atomic update and reports
// whether the article existed, using the matched count as the source of
// truth.
func (s *MongoStore) SetApproved(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.articles.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"approved": true}},
	)
	if err != nil {
		return false, fmt.Errorf("approve article: %w", err)
	}
	return res.MatchedCount > 0, nil
}

// DeleteArticle removes the article and reports whether it existed.
func (s *MongoStore) DeleteArticle(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.articles.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete article: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// FindArticleByWebURL returns the article cached under the given source
// URL, or nil if none exists. web_url is the dedup key for wire articles.
func (s *MongoStore) FindArticleByWebURL(ctx context.Context, webURL string) (*models.Article, error) {
	var a models.Article
	err := s.articles.FindOne(ctx, bson.M{"web_url": webURL}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find article by web_url: %w", err)
	}
	return &a, nil
}

// InsertComment stores a new comment and fills in its assigned ID.
func (s *MongoStore) InsertComment(ctx context.Context, c *models.Comment) error {
	res, err := s.comments.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}
	return nil
}

// ListComments returns all comments for an article in natural store order.
func (s *MongoStore) ListComments(ctx context.Context, articleID string) ([]models.Comment, error) {
	cur, err := s.comments.Find(ctx, bson.M{"article_id": articleID})
	if err != nil {
		return nil, fmt.Errorf("find comments: %w", err)
	}
	out := []models.Comment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode comments: %w", err)
	}
	return out, nil
}

// GetComment returns a comment by ID, or nil if it does not exist.
func (s *MongoStore) GetComment(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var c models.Comment
	err := s.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &c, nil
}

// DeleteComment removes the comment and reports whether it existed.
func (s *MongoStore) DeleteComment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.comments.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	return res.DeletedCount > 0, nil
}

// RedactComment sets the redacted text override, leaving the original
// text in place, and reports whether the comment existed.
func (s *MongoStore) RedactComment(ctx context.Context, id primitive.ObjectID, text string) (bool, error) {
	res, err := s.comments.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"redacted_text": text}},
	)
	if err != nil {
		return false, fmt.Errorf("redact comment: %w", err)
	}
	return res.MatchedCount > 0, nil
}
