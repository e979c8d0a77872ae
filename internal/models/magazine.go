package models

import (
	"encoding/json"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MagazineNameMin = 2
	MagazineNameMax = 16
)

var magazineNameRules = []validation.Rule{
	validation.Required.Error(fmt.Sprintf("must be between %d and %d characters", MagazineNameMin, MagazineNameMax)),
	validation.RuneLength(MagazineNameMin, MagazineNameMax).Error(fmt.Sprintf("must be between %d and %d characters", MagazineNameMin, MagazineNameMax)),
}

// Magazine is a publication. An empty category means none was given.
type Magazine struct {
	id       int64
	name     string
	category string
}

// NewMagazine creates a transient magazine.
func NewMagazine(name, category string) (*Magazine, error) {
	m := &Magazine{}
	if err := m.SetName(name); err != nil {
		return nil, err
	}
	m.SetCategory(category)
	return m, nil
}

// RestoreMagazine rebuilds a persisted magazine from a stored row.
func RestoreMagazine(id int64, name, category string) *Magazine {
	return &Magazine{id: id, name: name, category: category}
}

func (m *Magazine) ID() int64         { return m.id }
func (m *Magazine) Name() string      { return m.name }
func (m *Magazine) Category() string  { return m.category }
func (m *Magazine) HasCategory() bool { return m.category != "" }
func (m *Magazine) IsPersisted() bool { return m.id != 0 }
func (m *Magazine) SetID(id int64)    { m.id = id }

// SetCategory assigns the category. Any string is accepted; empty clears it.
func (m *Magazine) SetCategory(c string) { m.category = c }

// SetName assigns a name of 2 to 16 characters. Unlike an author's name it may be reassigned.
func (m *Magazine) SetName(name string) error {
	if err := validation.Validate(name, magazineNameRules...); err != nil {
		return valueViolation("name", err)
	}
	m.name = name
	return nil
}

func (m *Magazine) Validate() error {
	if err := validation.Validate(m.name, magazineNameRules...); err != nil {
		return valueViolation("name", err)
	}
	return nil
}

func (m *Magazine) String() string {
	return fmt.Sprintf("Magazine(id=%d, name=%q, category=%q)", m.id, m.name, m.category)
}

func (m *Magazine) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		Category *string `json:"category"`
	}{m.id, m.name, nullable(m.category)})
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
