package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Headline holds the structured headline of an article. The news wire
// delivers it as an object, so publisher-originated articles use the
// same shape.
type Headline struct {
	Main string `bson:"main" json:"main"`
}

// Byline holds the article attribution string, e.g. "By publisher".
type Byline struct {
	Original string `bson:"original" json:"original"`
}

// Article is a document in the articles collection. Wire articles carry
// a WebURL (the dedup key); publisher-originated articles never do, and
// the store relies on the field being absent to tell the two apart.
type Article struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Headline    Headline           `bson:"headline" json:"headline"`
	Abstract    string             `bson:"abstract" json:"abstract"`
	SectionName string             `bson:"section_name" json:"section_name"`
	Body        string             `bson:"body,omitempty" json:"body,omitempty"`
	Byline      Byline             `bson:"byline" json:"byline"`
	Multimedia  any                `bson:"multimedia,omitempty" json:"multimedia,omitempty"`
	Approved    bool               `bson:"approved" json:"approved"`
	WebURL      string             `bson:"web_url,omitempty" json:"web_url,omitempty"`
	CachedAt    time.Time          `bson:"cached_at" json:"cached_at"`
}

// PublisherOriginated reports whether the article was submitted through
// the publish flow rather than cached from the wire.
func (a *Article) PublisherOriginated() bool {
	return a.WebURL == ""
}

// Comment is a document in the comments collection. ParentID forms a
// reply tree; nil means top level. RedactedText is nil until a moderator
// redacts the comment, and the original Text is retained either way.
type Comment struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	ArticleID    string              `bson:"article_id" json:"article_id"`
	Text         string              `bson:"text" json:"text"`
	User         string              `bson:"user" json:"user"`
	RedactedText *string             `bson:"redacted_text" json:"redacted_text"`
	ParentID     *primitive.ObjectID `bson:"parent_id" json:"parent_id"`
}
