package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/desertthunder/magdesk/internal/models"
	"github.com/desertthunder/magdesk/internal/shared"
	th "github.com/desertthunder/magdesk/internal/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "csv", "markdown", "json"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}

	f, err := ParseFormat("md")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	_, err = ParseFormat("yaml")
	assert.ErrorIs(t, err, shared.ErrInvalidArgument)
}

func TestRender(t *testing.T) {
	magazines := []*models.Magazine{
		models.RestoreMagazine(1, "Tech Weekly", "Technology"),
		models.RestoreMagazine(2, "Arts Review", ""),
	}

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, MagazinesTable(magazines).Render(&buf, FormatTable))
		out := buf.String()
		assert.Contains(t, out, "CATEGORY")
		assert.Contains(t, out, "Tech Weekly")
		assert.Contains(t, out, "Arts Review")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, MagazinesTable(magazines).Render(&buf, FormatCSV))
		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.EqualFold("ID,Name,Category", lines[0]), "header %q", lines[0])
		assert.Equal(t, "1,Tech Weekly,Technology", lines[1])
	})

	t.Run("markdown", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, AuthorsTable([]*models.Author{models.RestoreAuthor(1, "Amara")}).Render(&buf, FormatMarkdown))
		assert.Contains(t, buf.String(), "| 1 | Amara |")
	})

	t.Run("json is not tabular", func(t *testing.T) {
		err := TitlesTable([]string{"Intro to Systems"}).Render(&bytes.Buffer{}, FormatJSON)
		assert.ErrorIs(t, err, shared.ErrInvalidArgument)
	})

	t.Run("write failure", func(t *testing.T) {
		err := TitlesTable([]string{"Intro to Systems"}).Render(&th.FWriter{}, FormatTable)
		assert.Error(t, err)
	})
}

func TestTables(t *testing.T) {
	articles := ArticlesTable([]*models.Article{
		models.RestoreArticle(1, "Intro to Systems", strings.Repeat("word ", 20), 3, 4),
	})
	require.Len(t, articles.Rows, 1)
	assert.Len(t, []rune(articles.Rows[0][2].(string)), contentWidth)

	contributions := ContributionsTable([]models.Contribution{{Author: models.RestoreAuthor(7, "Four"), ArticleCount: 4}})
	assert.Equal(t, 4, contributions.Rows[0][2])

	titles := TitlesTable([]string{"A longer title", "Another one"})
	assert.Equal(t, 2, titles.Rows[1][0])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, []*models.Author{models.RestoreAuthor(1, "Amara")}, false))
	assert.JSONEq(t, `[{"id":1,"name":"Amara"}]`, buf.String())

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, map[string]int{"articles": 2}, true))
	assert.Contains(t, buf.String(), "\n  \"articles\": 2")

	assert.Error(t, WriteJSON(&th.FWriter{}, 1, false))
}
