package service

import (
	"context"
	"strings"
	"time"

	"newsroom/internal/auth"
	"newsroom/pkg/models"
)

// pageTarget is how many articles a listing aims to return before the
// wire supplement gives up.
const pageTarget = 9

// PublishInput is the payload for submitting an article.
type PublishInput struct {
	Headline    string `json:"headline"`
	Abstract    string `json:"abstract"`
	SectionName string `json:"section_name"`
	Body        string `json:"body"`
	Multimedia  any    `json:"multimedia,omitempty"`
}

// ListArticles returns up to pageTarget articles for a section.
// Publisher-originated articles come first, newest cached first;
// unapproved ones are visible only to moderators and publishers. When
// the local set falls short, the wire supplement fills the remainder.
func (s *Service) ListArticles(ctx context.Context, section string, caller auth.Identity) ([]models.Article, error) {
	section = strings.ToLower(section)
	privileged := caller.IsModerator() || caller.IsPublisher()

	local, err := s.articles.ListPublisherArticles(ctx, section, !privileged)
	if err != nil {
		return nil, err
	}
	if len(local) >= pageTarget {
		return local, nil
	}

	return append(local, s.fetchAndCache(ctx, section, pageTarget-len(local))...), nil
}

// fetchAndCache pulls wire articles for a section, persists every one
// not yet cached (deduplicated by web_url) and returns at most need of
// them. All fetched docs are cached even when the page only has room
// for a few; only the returned slice is capped. Upstream failure is
// downgraded to an empty supplement; it never fails the listing.
func (s *Service) fetchAndCache(ctx context.Context, section string, need int) []models.Article {
	docs, err := s.wire.Search(ctx, section)
	if err != nil {
		s.log.Error("wire fetch failed", "section", section, "error", err)
		return nil
	}

	now := time.Now().UTC()
	out := make([]models.Article, 0, len(docs))
	for _, d := range docs {
		d.SectionName = section
		d.Approved = true
		d.CachedAt = now

		if d.WebURL != "" {
			existing, err := s.articles.FindArticleByWebURL(ctx, d.WebURL)
			switch {
			case err != nil:
				s.log.Warn("wire dedup lookup failed", "web_url", d.WebURL, "error", err)
			case existing != nil:
				d = *existing
			default:
				if err := s.articles.InsertArticle(ctx, &d); err != nil {
					s.log.Warn("wire article cache write failed", "web_url", d.WebURL, "error", err)
				}
			}
		}
		out = append(out, d)
	}
	if len(out) > need {
		out = out[:need]
	}
	return out
}

// Publish stores a new unapproved article for a publisher caller.
func (s *Service) Publish(ctx context.Context, caller auth.Identity, in PublishInput) (*models.Article, error) {
	if !caller.IsPublisher() {
		return nil, ErrUnauthorized
	}
	if in.Headline == "" || in.Abstract == "" || in.SectionName == "" || in.Body == "" {
		return nil, ErrMissingFields
	}

	a := &models.Article{
		Headline:    models.Headline{Main: in.Headline},
		Abstract:    in.Abstract,
		SectionName: in.SectionName,
		Body:        in.Body,
		Byline:      models.Byline{Original: "By " + caller.Name},
		Multimedia:  in.Multimedia,
		Approved:    false,
		CachedAt:    time.Now().UTC(),
	}
	if err := s.articles.InsertArticle(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListPending returns all unapproved articles for moderation.
func (s *Service) ListPending(ctx context.Context, caller auth.Identity) ([]models.Article, error) {
	if !caller.IsModerator() {
		return nil, ErrUnauthorized
	}
	return s.articles.ListPendingArticles(ctx)
}

// Approve marks an article approved. The store's matched count decides
// not-found, so approval and the existence check are a single operation.
func (s *Service) Approve(ctx context.Context, caller auth.Identity, articleID string) error {
	if !caller.IsModerator() {
		return ErrUnauthorized
	}
	id, err := parseObjectID(articleID)
	if err != nil {
		return err
	}
	matched, err := s.articles.SetApproved(ctx, id)
	if err != nil {
		return err
	}
	if !matched {
		return ErrArticleNotFound
	}
	return nil
}

// DeleteArticle removes an article; the store's deleted count decides
// not-found.
func (s *Service) DeleteArticle(ctx context.Context, caller auth.Identity, articleID string) error {
	if !caller.IsModerator() {
		return ErrUnauthorized
	}
	id, err := parseObjectID(articleID)
	if err != nil {
		return err
	}
	deleted, err := s.articles.DeleteArticle(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrArticleNotFound
	}
	return nil
}
