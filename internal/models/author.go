package models

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var authorNameRules = []validation.Rule{
	validation.Required.Error("must not be empty"),
}

// Author is a person who writes articles. The name can be assigned exactly once.
type Author struct {
	id      int64
	name    string
	nameSet bool
}

// NewAuthor creates a transient author with the given name.
func NewAuthor(name string) (*Author, error) {
	a := &Author{}
	if err := a.SetName(name); err != nil {
		return nil, err
	}
	return a, nil
}

// RestoreAuthor rebuilds a persisted author from a stored row without re-running validation.
func RestoreAuthor(id int64, name string) *Author {
	return &Author{id: id, name: name, nameSet: true}
}

func (a *Author) ID() int64         { return a.id }
func (a *Author) Name() string      { return a.name }
func (a *Author) IsPersisted() bool { return a.id != 0 }

// SetID records the store-generated key. Repositories call it after insert.
func (a *Author) SetID(id int64) { a.id = id }

// SetName assigns the name. Any second call fails with [ErrImmutable], even with the same value.
func (a *Author) SetName(name string) error {
	if err := validation.Validate(name, authorNameRules...); err != nil {
		return valueViolation("name", err)
	}
	if a.nameSet {
		return &ValidationError{Field: "name", Kind: ErrImmutable, Err: fmt.Errorf("cannot change %q after it is set", a.name)}
	}
	a.name = name
	a.nameSet = true
	return nil
}

// Validate checks that the author carries a usable name.
func (a *Author) Validate() error {
	if !a.nameSet {
		return valueViolation("name", fmt.Errorf("must be set"))
	}
	if err := validation.Validate(a.name, authorNameRules...); err != nil {
		return valueViolation("name", err)
	}
	return nil
}

func (a *Author) String() string {
	return fmt.Sprintf("Author(id=%d, name=%q)", a.id, a.name)
}

func (a *Author) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}{a.id, a.name})
}
