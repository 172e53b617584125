package api

import (
	"context"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"newsroom/pkg/models"
)

// fakeStore backs the handlers in tests; it doubles as the health
// endpoint's Pinger.
type fakeStore struct {
	articles []models.Article
	comments []models.Comment
	pingErr  error
}

func (f *fakeStore) Ping(context.Context) error { return f.pingErr }

func (f *fakeStore) ListPublisherArticles(_ context.Context, section string, approvedOnly bool) ([]models.Article, error) {
	out := []models.Article{}
	for _, a := range f.articles {
		if a.WebURL != "" {
			continue
		}
		if approvedOnly && !a.Approved {
			continue
		}
		if section != "" && !strings.Contains(strings.ToLower(a.SectionName), strings.ToLower(section)) {
			continue
		}
		out = append(out, a)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CachedAt.After(out[j].CachedAt) })
	return out, nil
}

func (f *fakeStore) InsertArticle(_ context.Context, a *models.Article) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.articles = append(f.articles, *a)
	return nil
}

func (f *fakeStore) ListPendingArticles(context.Context) ([]models.Article, error) {
	out := []models.Article{}
	for _, a := range f.articles {
		if !a.Approved {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) SetApproved(_ context.Context, id primitive.ObjectID) (bool, error) {
	for i := range f.articles {
		if f.articles[i].ID == id {
			f.articles[i].Approved = true
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) DeleteArticle(_ context.Context, id primitive.ObjectID) (bool, error) {
	for i := range f.articles {
		if f.articles[i].ID == id {
			f.articles = append(f.articles[:i], f.articles[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) FindArticleByWebURL(_ context.Context, webURL string) (*models.Article, error) {
	for i := range f.articles {
		if f.articles[i].WebURL == webURL {
			a := f.articles[i]
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) InsertComment(_ context.Context, c *models.Comment) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	f.comments = append(f.comments, *c)
	return nil
}

func (f *fakeStore) ListComments(_ context.Context, articleID string) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range f.comments {
		if c.ArticleID == articleID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) GetComment(_ context.Context, id primitive.ObjectID) (*models.Comment, error) {
	for i := range f.comments {
		if f.comments[i].ID == id {
			c := f.comments[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) DeleteComment(_ context.Context, id primitive.ObjectID) (bool, error) {
	for i := range f.comments {
		if f.comments[i].ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) RedactComment(_ context.Context, id primitive.ObjectID, text string) (bool, error) {
	for i := range f.comments {
		if f.comments[i].ID == id {
			f.comments[i].RedactedText = &text
			return true, nil
		}
	}
	return false, nil
}

type fakeWire struct {
	docs []models.Article
	err  error
}

func (f *fakeWire) Search(context.Context, string) ([]models.Article, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.Article, len(f.docs))
	copy(out, f.docs)
	return out, nil
}
