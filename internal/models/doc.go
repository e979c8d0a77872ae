// Package models defines the magazine catalogue entities and the store-handle contract used to persist them.
//
// Entities:
//   - [Author] : a person; the name is fixed after it is first assigned
//   - [Magazine] : a publication with a 2..16 character name and an optional category
//   - [Article] : a piece of content linking one author to one magazine by foreign key
//   - [Contribution] : an author paired with an article count, produced by grouped queries
//
// Every entity starts transient (ID zero) and becomes persisted once a repository inserts it and back-fills the
// store-generated key. There is no path back and no update or delete.
//
// Setters validate on assignment with ozzo-validation rules and return a [*ValidationError] whose Kind is one of
// [ErrTypeViolation], [ErrValueViolation] or [ErrImmutable]. Queries that find nothing return [ErrNoData] or
// [ErrNotFound] instead of an empty result.
package models
