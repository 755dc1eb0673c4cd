package profile

import (
	"strconv"
	"strings"

	"github.com/zhubert/studydesk/internal/errors"
)

// FieldKind says how a field is edited and rendered.
type FieldKind int

const (
	KindText FieldKind = iota
	KindBool
)

// Field locates one editable value inside a section of type T. Fields are
// only built by a section's schema, so a Field always points at a real
// member of T.
type Field[T any] struct {
	Path  string // dotted JSON path, e.g. "address1.city"
	Label string
	Kind  FieldKind

	text func(*T) *string
	flag func(*T) *bool
	// exists, when set, reports whether the target is present in a value.
	exists func(*T) bool
}

func textField[T any](path, label string, fn func(*T) *string) Field[T] {
	return Field[T]{Path: path, Label: label, Kind: KindText, text: fn}
}

func boolField[T any](path, label string, fn func(*T) *bool) Field[T] {
	return Field[T]{Path: path, Label: label, Kind: KindBool, flag: fn}
}

// valid reports whether f came from a schema.
func (f Field[T]) valid() bool {
	return f.text != nil || f.flag != nil
}

// Get returns f's value in v as text. Booleans render as "true"/"false".
func (f Field[T]) Get(v T) string {
	if f.exists != nil && !f.exists(&v) {
		return ""
	}
	switch {
	case f.text != nil:
		return *f.text(&v)
	case f.flag != nil:
		return strconv.FormatBool(*f.flag(&v))
	}
	return ""
}

// Bool returns f's value in v for boolean fields.
func (f Field[T]) Bool(v T) bool {
	if f.flag == nil || (f.exists != nil && !f.exists(&v)) {
		return false
	}
	return *f.flag(&v)
}

func (f Field[T]) set(v *T, value string) error {
	if f.exists != nil && !f.exists(v) {
		return errors.E(errors.Op("profile.Set"), errors.KindInvalid, f.Path+" does not exist")
	}
	switch {
	case f.text != nil:
		*f.text(v) = value
		return nil
	case f.flag != nil:
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return errors.E(errors.Op("profile.Set"), errors.KindInvalid,
				f.Label+" must be true or false", err)
		}
		*f.flag(v) = b
		return nil
	}
	return errors.E(errors.Op("profile.Set"), errors.KindInvalid, "field has no target")
}

// Schema is the field table of one section.
type Schema[T any] struct {
	Name   string
	fields []Field[T]
	byPath map[string]Field[T]
	// dynamic resolves paths that are not in the static table, such as
	// indexed list entries. It may be nil.
	dynamic func(v T, path string) (Field[T], bool)
}

func newSchema[T any](name string, fields []Field[T], dynamic func(T, string) (Field[T], bool)) *Schema[T] {
	s := &Schema[T]{Name: name, fields: fields, byPath: make(map[string]Field[T], len(fields)), dynamic: dynamic}
	for _, f := range fields {
		s.byPath[f.Path] = f
	}
	return s
}

// Fields returns the static field table in display order.
func (s *Schema[T]) Fields() []Field[T] {
	out := make([]Field[T], len(s.fields))
	copy(out, s.fields)
	return out
}

// Lookup resolves a dotted path of one to three segments against v.
func (s *Schema[T]) Lookup(v T, path string) (Field[T], bool) {
	segs := strings.Split(path, ".")
	if len(segs) < 1 || len(segs) > 3 {
		return Field[T]{}, false
	}
	for _, seg := range segs {
		if seg == "" {
			return Field[T]{}, false
		}
	}
	if f, ok := s.byPath[path]; ok {
		return f, true
	}
	if s.dynamic != nil {
		return s.dynamic(v, path)
	}
	return Field[T]{}, false
}
