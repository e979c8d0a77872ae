// Package tasks runs the multi-step catalogue workflows on top of the repositories.
//
// # Entry
//
// [Catalogue.Entry] is the data-entry flow: it builds an author, a magazine and an article in memory, inserts all
// three inside one transaction and commits once. It then reads back every magazine, every author and every article
// title, and resolves the new article's author and magazine names into an [EntryReport].
//
// # Seeding
//
// [Catalogue.Seed] loads a [SeedDocument] decoded from TOML. Records are untyped, so each goes through the
// models.Decode* functions and a field with the wrong type is reported as a type violation. Articles may refer to
// authors and magazines of the same document by name, or to existing rows by ID.
//
// Both workflows own their transaction: a failure rolls back everything written during the run. Each run logs
// under a fresh session ID.
package tasks
