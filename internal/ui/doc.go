// Package ui implements the interactive entry form using bubbletea's Elm architecture.
//
// The [Form] walks through five fields in order: author name, magazine name, magazine category, article title and
// article content. Each field is validated with the same rules the models apply on assignment before focus moves
// on, so an invalid value is caught while the user can still fix it. Submitting the last field quits the program
// and [Form.Result] returns the collected [tasks.EntryInput].
//
// [Styles] is also used by the CLI for headings and notices outside the form.
package ui
