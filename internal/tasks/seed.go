package tasks

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/desertthunder/magdesk/internal/models"
	"github.com/desertthunder/magdesk/internal/repositories"
	"github.com/desertthunder/magdesk/internal/shared"
)

// SeedDocument is the TOML layout accepted by [Catalogue.Seed]:
//
//	[[authors]]
//	name = "Amara"
//
//	[[magazines]]
//	name = "Tech Weekly"
//	category = "Technology"
//
//	[[articles]]
//	title = "Intro to Systems"
//	content = "body text..."
//	author = "Amara"          # or author_id = 1
//	magazine = "Tech Weekly"  # or magazine_id = 1
//
// A name shared by two authors or two magazines cannot be used as a reference.
type SeedDocument struct {
	Authors   []models.Record `toml:"authors"`
	Magazines []models.Record `toml:"magazines"`
	Articles  []models.Record `toml:"articles"`
}

// SeedResult counts the rows inserted by a seed run.
type SeedResult struct {
	Authors   int `json:"authors"`
	Magazines int `json:"magazines"`
	Articles  int `json:"articles"`
}

// DecodeSeed parses a TOML seed document.
func DecodeSeed(r io.Reader) (*SeedDocument, error) {
	var doc SeedDocument
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse seed document: %w", err)
	}
	return &doc, nil
}

// LoadSeedFile reads and parses the seed document at path.
func LoadSeedFile(path string) (*SeedDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file: %w", err)
	}
	defer f.Close()
	return DecodeSeed(f)
}

// Seed inserts every record of doc in one transaction. Any failure rolls the whole document back.
func (c *Catalogue) Seed(ctx context.Context, doc *SeedDocument) (*SeedResult, error) {
	logger := shared.WithLogger(c.logger, "session", shared.GenerateID())

	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var (
		authorRepo   = repositories.NewAuthorRepository(tx)
		magazineRepo = repositories.NewMagazineRepository(tx)
		articleRepo  = repositories.NewArticleRepository(tx)
		authorIDs    = map[string]int64{}
		magazineIDs  = map[string]int64{}
		result       = &SeedResult{}
	)

	for i, rec := range doc.Authors {
		author, err := models.DecodeAuthor(rec)
		if err != nil {
			return nil, fmt.Errorf("authors[%d]: %w", i, err)
		}
		if err := authorRepo.Create(ctx, author); err != nil {
			return nil, fmt.Errorf("authors[%d]: %w", i, err)
		}
		recordName(authorIDs, author.Name(), author.ID())
		result.Authors++
	}

	for i, rec := range doc.Magazines {
		magazine, err := models.DecodeMagazine(rec)
		if err != nil {
			return nil, fmt.Errorf("magazines[%d]: %w", i, err)
		}
		if err := magazineRepo.Create(ctx, magazine); err != nil {
			return nil, fmt.Errorf("magazines[%d]: %w", i, err)
		}
		recordName(magazineIDs, magazine.Name(), magazine.ID())
		result.Magazines++
	}

	for i, rec := range doc.Articles {
		resolved, err := resolveReferences(rec, authorIDs, magazineIDs)
		if err != nil {
			return nil, fmt.Errorf("articles[%d]: %w", i, err)
		}
		article, err := models.DecodeArticle(resolved)
		if err != nil {
			return nil, fmt.Errorf("articles[%d]: %w", i, err)
		}
		if _, err := articleRepo.Create(ctx, article.Title(), article.Content(), article.AuthorID(), article.MagazineID()); err != nil {
			return nil, fmt.Errorf("articles[%d]: %w", i, err)
		}
		result.Articles++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}

	logger.Info("seed committed", "authors", result.Authors, "magazines", result.Magazines, "articles", result.Articles)
	return result, nil
}

// ambiguousID marks a name shared by more than one record in the same document. Store IDs start at 1.
const ambiguousID int64 = 0

func recordName(ids map[string]int64, name string, id int64) {
	if _, seen := ids[name]; seen {
		ids[name] = ambiguousID
		return
	}
	ids[name] = id
}

// resolveReferences replaces "author" and "magazine" names with the IDs created earlier in the same document.
func resolveReferences(rec models.Record, authorIDs, magazineIDs map[string]int64) (models.Record, error) {
	out := make(models.Record, len(rec)+2)
	for k, v := range rec {
		out[k] = v
	}

	refs := []struct {
		nameKey, idKey string
		ids            map[string]int64
	}{
		{"author", "author_id", authorIDs},
		{"magazine", "magazine_id", magazineIDs},
	}

	for _, ref := range refs {
		name, present, err := rec.String(ref.nameKey)
		if err != nil {
			return nil, err
		}
		if !present {
			continue
		}
		id, ok := ref.ids[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown %s %q", shared.ErrInvalidInput, ref.nameKey, name)
		}
		if id == ambiguousID {
			return nil, fmt.Errorf("%w: %s %q appears more than once; use %s", shared.ErrInvalidInput, ref.nameKey, name, ref.idKey)
		}
		out[ref.idKey] = id
		delete(out, ref.nameKey)
	}

	return out, nil
}
