package models

import (
	"fmt"
	"math"
)

// Record is an untyped field map, as produced by decoding TOML or JSON documents.
type Record map[string]any

// String returns the string stored under key. A missing key yields "" and ok=false; a non-string value is a
// type violation.
func (r Record) String(key string) (s string, ok bool, err error) {
	v, present := r[key]
	if !present || v == nil {
		return "", false, nil
	}
	s, isString := v.(string)
	if !isString {
		return "", true, typeViolation(key, v)
	}
	return s, true, nil
}

// Int returns the integer stored under key, accepting the numeric types decoders produce.
func (r Record) Int(key string) (int64, error) {
	v, present := r[key]
	if !present || v == nil {
		return 0, valueViolation(key, fmt.Errorf("is required"))
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		// NaN fails the equality; infinities and overflow fail the range check.
		if n == math.Trunc(n) && n >= math.MinInt64 && n < -math.MinInt64 {
			return int64(n), nil
		}
	}
	return 0, &ValidationError{Field: key, Kind: ErrTypeViolation, Err: fmt.Errorf("must be an integer, got %T", v)}
}

// DecodeAuthor builds a transient author from a record with a "name" field.
func DecodeAuthor(r Record) (*Author, error) {
	name, _, err := r.String("name")
	if err != nil {
		return nil, err
	}
	return NewAuthor(name)
}

// DecodeMagazine builds a transient magazine from a record with "name" and an optional "category".
func DecodeMagazine(r Record) (*Magazine, error) {
	name, _, err := r.String("name")
	if err != nil {
		return nil, err
	}
	category, _, err := r.String("category")
	if err != nil {
		return nil, err
	}
	return NewMagazine(name, category)
}

// DecodeArticle builds a transient article from a record with "title", "content", "author_id" and "magazine_id".
func DecodeArticle(r Record) (*Article, error) {
	title, _, err := r.String("title")
	if err != nil {
		return nil, err
	}
	content, _, err := r.String("content")
	if err != nil {
		return nil, err
	}
	authorID, err := r.Int("author_id")
	if err != nil {
		return nil, err
	}
	magazineID, err := r.Int("magazine_id")
	if err != nil {
		return nil, err
	}
	return NewArticle(title, content, authorID, magazineID)
}
