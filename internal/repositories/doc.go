// Package repositories implements SQLite persistence for authors, magazines and articles.
//
// Each repository wraps a caller-supplied [models.Querier], which may be a *sql.DB or an open *sql.Tx. Repositories
// never begin, commit or roll back transactions; the caller issues one commit after all inserts.
//
// Key Implementations:
//   - [AuthorRepository] : author inserts and the author's articles and magazines
//   - [MagazineRepository] : magazine inserts, contributors and grouped article counts
//   - [ArticleRepository] : the article factory, title listing and author/magazine name lookups
//
// Store failures are wrapped with context and otherwise passed through unchanged, so [errors.Is] still matches
// driver errors. Queries with nothing to report return [models.ErrNoData] or [models.ErrNotFound].
package repositories
