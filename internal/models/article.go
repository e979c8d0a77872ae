package models

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	ArticleTitleMin = 5
	ArticleTitleMax = 50
)

var articleTitleRules = []validation.Rule{
	validation.Required.Error(fmt.Sprintf("must be between %d and %d characters", ArticleTitleMin, ArticleTitleMax)),
	validation.RuneLength(ArticleTitleMin, ArticleTitleMax).Error(fmt.Sprintf("must be between %d and %d characters", ArticleTitleMin, ArticleTitleMax)),
}

// Article is a single piece of content. AuthorID and MagazineID are plain foreign keys; their existence is left
// to the store's referential integrity.
type Article struct {
	id         int64
	title      string
	content    string
	authorID   int64
	magazineID int64
}

// NewArticle creates a transient article.
func NewArticle(title, content string, authorID, magazineID int64) (*Article, error) {
	a := &Article{content: content, authorID: authorID, magazineID: magazineID}
	if err := a.SetTitle(title); err != nil {
		return nil, err
	}
	return a, nil
}

// RestoreArticle rebuilds a persisted article from a stored row.
func RestoreArticle(id int64, title, content string, authorID, magazineID int64) *Article {
	return &Article{id: id, title: title, content: content, authorID: authorID, magazineID: magazineID}
}

func (a *Article) ID() int64         { return a.id }
func (a *Article) Title() string     { return a.title }
func (a *Article) Content() string   { return a.content }
func (a *Article) AuthorID() int64   { return a.authorID }
func (a *Article) MagazineID() int64 { return a.magazineID }
func (a *Article) IsPersisted() bool { return a.id != 0 }
func (a *Article) SetID(id int64)    { a.id = id }

// SetTitle assigns a title of 5 to 50 characters.
func (a *Article) SetTitle(title string) error {
	if err := validation.Validate(title, articleTitleRules...); err != nil {
		return valueViolation("title", err)
	}
	a.title = title
	return nil
}

func (a *Article) Validate() error {
	if err := validation.Validate(a.title, articleTitleRules...); err != nil {
		return valueViolation("title", err)
	}
	return nil
}

func (a *Article) String() string {
	return fmt.Sprintf("Article(id=%d, title=%q, author_id=%d, magazine_id=%d)", a.id, a.title, a.authorID, a.magazineID)
}

func (a *Article) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         int64  `json:"id"`
		Title      string `json:"title"`
		Content    string `json:"content"`
		AuthorID   int64  `json:"author_id"`
		MagazineID int64  `json:"magazine_id"`
	}{a.id, a.title, a.content, a.authorID, a.magazineID})
}
