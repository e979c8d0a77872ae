package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/desertthunder/magdesk/internal/models"
	"github.com/desertthunder/magdesk/internal/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.EnableForeignKeys(db); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

func mustAuthor(t *testing.T, db *sql.DB, name string) *models.Author {
	t.Helper()
	a, err := models.NewAuthor(name)
	require.NoError(t, err)
	require.NoError(t, NewAuthorRepository(db).Create(context.Background(), a))
	return a
}

func mustMagazine(t *testing.T, db *sql.DB, name, category string) *models.Magazine {
	t.Helper()
	m, err := models.NewMagazine(name, category)
	require.NoError(t, err)
	require.NoError(t, NewMagazineRepository(db).Create(context.Background(), m))
	return m
}

func mustArticles(t *testing.T, db *sql.DB, author *models.Author, magazine *models.Magazine, n int) {
	t.Helper()
	repo := NewArticleRepository(db)
	for i := 0; i < n; i++ {
		_, err := repo.Create(context.Background(), fmt.Sprintf("%s piece %d", author.Name(), i+1), "body", author.ID(), magazine.ID())
		require.NoError(t, err)
	}
}

var cmpModels = cmp.AllowUnexported(models.Author{}, models.Magazine{}, models.Article{})

func TestAuthorRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create back-fills ID", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAuthorRepository(db)

		a, err := models.NewAuthor("Amara")
		require.NoError(t, err)
		assert.False(t, a.IsPersisted())

		require.NoError(t, repo.Create(ctx, a))
		assert.True(t, a.IsPersisted())
		assert.Equal(t, int64(1), a.ID())
	})

	t.Run("Create twice is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		a := mustAuthor(t, db, "Amara")

		err := NewAuthorRepository(db).Create(ctx, a)
		assert.ErrorIs(t, err, models.ErrAlreadyPersisted)
	})

	t.Run("Create rejects zero value", func(t *testing.T) {
		db := setupTestDB(t)
		err := NewAuthorRepository(db).Create(ctx, &models.Author{})
		assert.ErrorIs(t, err, models.ErrValueViolation)
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAuthorRepository(db)

		empty, err := repo.List(ctx)
		require.NoError(t, err)
		assert.NotNil(t, empty)
		assert.Empty(t, empty)

		mustAuthor(t, db, "Amara")
		mustAuthor(t, db, "Bo")

		got, err := repo.List(ctx)
		require.NoError(t, err)
		want := []*models.Author{models.RestoreAuthor(1, "Amara"), models.RestoreAuthor(2, "Bo")}
		if diff := cmp.Diff(want, got, cmpModels); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Articles and Magazines", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAuthorRepository(db)

		amara := mustAuthor(t, db, "Amara")
		bo := mustAuthor(t, db, "Bo")
		tech := mustMagazine(t, db, "Tech Weekly", "Technology")
		arts := mustMagazine(t, db, "Arts Review", "")

		mustArticles(t, db, amara, tech, 2)
		mustArticles(t, db, amara, arts, 1)
		mustArticles(t, db, bo, tech, 1)

		articles, err := repo.Articles(ctx, amara.ID())
		require.NoError(t, err)
		assert.Len(t, articles, 3)
		for _, a := range articles {
			assert.Equal(t, amara.ID(), a.AuthorID())
		}

		magazines, err := repo.Magazines(ctx, amara.ID())
		require.NoError(t, err)
		want := []*models.Magazine{
			models.RestoreMagazine(tech.ID(), "Tech Weekly", "Technology"),
			models.RestoreMagazine(tech.ID(), "Tech Weekly", "Technology"),
			models.RestoreMagazine(arts.ID(), "Arts Review", ""),
		}
		if diff := cmp.Diff(want, magazines, cmpModels); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestMagazineRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create then List", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMagazineRepository(db)

		m, err := models.NewMagazine("Tech Weekly", "Technology")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, m))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.Equal(t, m.ID(), all[0].ID())
		assert.Equal(t, "Tech Weekly", all[0].Name())
		assert.Equal(t, "Technology", all[0].Category())
	})

	t.Run("empty category stored as NULL", func(t *testing.T) {
		db := setupTestDB(t)
		m := mustMagazine(t, db, "Arts Review", "")

		var category sql.NullString
		require.NoError(t, db.QueryRow("SELECT category FROM magazines WHERE id = ?", m.ID()).Scan(&category))
		assert.False(t, category.Valid)
	})

	t.Run("Articles and Contributors", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMagazineRepository(db)

		tech := mustMagazine(t, db, "Tech Weekly", "Technology")
		amara := mustAuthor(t, db, "Amara")
		bo := mustAuthor(t, db, "Bo")
		mustArticles(t, db, amara, tech, 2)
		mustArticles(t, db, bo, tech, 1)

		articles, err := repo.Articles(ctx, tech.ID())
		require.NoError(t, err)
		assert.Len(t, articles, 3)

		contributors, err := repo.Contributors(ctx, tech.ID())
		require.NoError(t, err)
		want := []*models.Author{
			models.RestoreAuthor(amara.ID(), "Amara"),
			models.RestoreAuthor(amara.ID(), "Amara"),
			models.RestoreAuthor(bo.ID(), "Bo"),
		}
		if diff := cmp.Diff(want, contributors, cmpModels); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ArticleTitles", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMagazineRepository(db)
		tech := mustMagazine(t, db, "Tech Weekly", "Technology")

		titles, err := repo.ArticleTitles(ctx, tech.ID())
		assert.ErrorIs(t, err, models.ErrNoData)
		assert.Nil(t, titles)

		amara := mustAuthor(t, db, "Amara")
		mustArticles(t, db, amara, tech, 2)

		titles, err = repo.ArticleTitles(ctx, tech.ID())
		require.NoError(t, err)
		assert.Equal(t, []string{"Amara piece 1", "Amara piece 2"}, titles)
	})

	t.Run("ContributingAuthors", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMagazineRepository(db)
		tech := mustMagazine(t, db, "Tech Weekly", "Technology")
		other := mustMagazine(t, db, "Other Mag", "")

		counts := map[string]int{"One": 1, "Two": 2, "Three": 3, "Four": 4}
		for _, name := range []string{"One", "Two", "Three", "Four"} {
			mustArticles(t, db, mustAuthor(t, db, name), tech, counts[name])
		}

		got, err := repo.ContributingAuthors(ctx, tech.ID())
		require.NoError(t, err)
		require.Len(t, got, 2)

		byName := map[string]int{}
		for _, c := range got {
			byName[c.Author.Name()] = c.ArticleCount
		}
		assert.Equal(t, map[string]int{"Three": 3, "Four": 4}, byName)

		_, err = repo.ContributingAuthors(ctx, other.ID())
		assert.ErrorIs(t, err, models.ErrNoData)
	})

	t.Run("ContributingAuthors all at or below threshold", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMagazineRepository(db)
		tech := mustMagazine(t, db, "Tech Weekly", "Technology")
		mustArticles(t, db, mustAuthor(t, db, "One"), tech, 1)
		mustArticles(t, db, mustAuthor(t, db, "Two"), tech, ContributorThreshold)

		got, err := repo.ContributingAuthors(ctx, tech.ID())
		assert.ErrorIs(t, err, models.ErrNoData)
		assert.Nil(t, got)
	})

	t.Run("ContributingAuthors with a NULL author name", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewMagazineRepository(db)
		tech := mustMagazine(t, db, "Tech Weekly", "Technology")

		res, err := db.Exec("INSERT INTO authors (name) VALUES (NULL)")
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		mustArticles(t, db, models.RestoreAuthor(id, ""), tech, ContributorThreshold+1)

		got, err := repo.ContributingAuthors(ctx, tech.ID())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, id, got[0].Author.ID())
		assert.Empty(t, got[0].Author.Name())
		assert.Equal(t, ContributorThreshold+1, got[0].ArticleCount)
	})
}

func TestArticleRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create validates before insert", func(t *testing.T) {
		db := setupTestDB(t)
		amara := mustAuthor(t, db, "Amara")
		tech := mustMagazine(t, db, "Tech Weekly", "Technology")

		_, err := NewArticleRepository(db).Create(ctx, "Tiny", "body", amara.ID(), tech.ID())
		assert.ErrorIs(t, err, models.ErrValueViolation)

		var count int
		require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM articles").Scan(&count))
		assert.Zero(t, count)
	})

	t.Run("Create with unknown author fails on foreign key", func(t *testing.T) {
		db := setupTestDB(t)
		tech := mustMagazine(t, db, "Tech Weekly", "Technology")

		_, err := NewArticleRepository(db).Create(ctx, "Intro to Systems", "body", 99, tech.ID())
		assert.Error(t, err)
	})

	t.Run("Titles", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArticleRepository(db)

		titles, err := repo.Titles(ctx)
		assert.ErrorIs(t, err, models.ErrNoData)
		assert.Nil(t, titles)

		amara := mustAuthor(t, db, "Amara")
		tech := mustMagazine(t, db, "Tech Weekly", "Technology")
		for _, title := range []string{"A longer title", "Another one"} {
			_, err := repo.Create(ctx, title, "body", amara.ID(), tech.ID())
			require.NoError(t, err)
		}

		titles, err = repo.Titles(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"A longer title", "Another one"}, titles)
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArticleRepository(db)
		amara := mustAuthor(t, db, "Amara")
		tech := mustMagazine(t, db, "Tech Weekly", "Technology")

		created, err := repo.Create(ctx, "Intro to Systems", "body text...", amara.ID(), tech.ID())
		require.NoError(t, err)

		got, err := repo.Get(ctx, created.ID())
		require.NoError(t, err)
		if diff := cmp.Diff(created, got, cmpModels); diff != "" {
			t.Fatalf("mismatch (-want +got):\n%s", diff)
		}

		_, err = repo.Get(ctx, 404)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("name lookups on missing rows", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewArticleRepository(db)
		orphan := models.RestoreArticle(1, "Orphaned piece", "", 41, 42)

		_, err := repo.AuthorName(ctx, orphan)
		assert.ErrorIs(t, err, models.ErrNotFound)

		_, err = repo.MagazineName(ctx, orphan)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

// TestEndToEnd follows the entry flow: one transaction, one commit, then reads.
func TestEndToEnd(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	defer tx.Rollback()

	author, err := models.NewAuthor("Amara")
	require.NoError(t, err)
	require.NoError(t, NewAuthorRepository(tx).Create(ctx, author))

	magazine, err := models.NewMagazine("Tech Weekly", "Technology")
	require.NoError(t, err)
	require.NoError(t, NewMagazineRepository(tx).Create(ctx, magazine))

	article, err := NewArticleRepository(tx).Create(ctx, "Intro to Systems", "body text...", author.ID(), magazine.ID())
	require.NoError(t, err)

	require.NoError(t, tx.Commit())

	articles := NewArticleRepository(db)

	authorName, err := articles.AuthorName(ctx, article)
	require.NoError(t, err)
	assert.Equal(t, "Amara", authorName)

	magazineName, err := articles.MagazineName(ctx, article)
	require.NoError(t, err)
	assert.Equal(t, "Tech Weekly", magazineName)

	titles, err := articles.Titles(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Intro to Systems"}, titles)
}
