package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"newsroom/internal/auth"
	"newsroom/pkg/models"
)

// PostComment stores a comment by an authenticated caller. A non-empty
// parentID threads the comment under an existing one.
func (s *Service) PostComment(ctx context.Context, caller auth.Identity, articleID, text, parentID string) (*models.Comment, error) {
	if !caller.IsAuthenticated() {
		return nil, ErrUnauthorized
	}

	var parent *primitive.ObjectID
	if parentID != "" {
		id, err := parseObjectID(parentID)
		if err != nil {
			return nil, err
		}
		parent = &id
	}

	c := &models.Comment{
		ArticleID:    articleID,
		Text:         text,
		User:         caller.Name,
		RedactedText: nil,
		ParentID:     parent,
	}
	if err := s.comments.InsertComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// ListComments returns every comment on an article in store order.
func (s *Service) ListComments(ctx context.Context, articleID string) ([]models.Comment, error) {
	return s.comments.ListComments(ctx, articleID)
}

// DeleteComment removes a comment if the caller is its author or a
// moderator.
func (s *Service) DeleteComment(ctx context.Context, caller auth.Identity, commentID string) error {
	if !caller.IsAuthenticated() {
		return ErrUnauthorized
	}
	id, err := parseObjectID(commentID)
	if err != nil {
		return err
	}

	c, err := s.comments.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCommentNotFound
	}
	if c.User != caller.Name && !caller.IsModerator() {
		return ErrForbidden
	}

	_, err = s.comments.DeleteComment(ctx, id)
	return err
}

// RedactComment sets the displayed text override on a comment. Only
// moderators may redact; the original text stays in the record.
func (s *Service) RedactComment(ctx context.Context, caller auth.Identity, commentID, text string) error {
	if !caller.IsModerator() {
		return ErrForbidden
	}
	id, err := parseObjectID(commentID)
	if err != nil {
		return err
	}
	_, err = s.comments.RedactComment(ctx, id, text)
	return err
}
