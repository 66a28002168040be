package descriptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formengine/pkg/model"
)

// ErrFormNotFound is returned when a store has no form under the requested id.
var ErrFormNotFound = errors.New("descriptor: form not found")

// Store keeps the parsed forms. It is safe for concurrent readers when treated
// as immutable after construction.
type Store struct {
	forms   map[string]model.FormModel
	sources map[string]string
}

type documentFile struct {
	Forms map[string]model.FormModel `json:"forms" yaml:"forms"`
}

// LoadFS walks the provided filesystem and parses JSON/YAML descriptor files.
// When fsys is nil or no descriptor files are present, the returned store is
// empty.
func LoadFS(fsys fs.FS) (*Store, error) {
	store := newStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDescriptorFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return fmt.Errorf("descriptor: read %s: %w", path, err)
		}
		return store.add(data, path)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

// LoadFile parses a single descriptor document from disk.
func LoadFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("descriptor: read %s: %w", path, err)
	}
	store := newStore()
	if err := store.add(data, path); err != nil {
		return nil, err
	}
	return store, nil
}

// Parse reads a single descriptor document held in memory.
func Parse(data []byte, source string) (*Store, error) {
	store := newStore()
	if err := store.add(data, source); err != nil {
		return nil, err
	}
	return store, nil
}

func newStore() *Store {
	return &Store{
		forms:   make(map[string]model.FormModel),
		sources: make(map[string]string),
	}
}

func (s *Store) add(data []byte, source string) error {
	doc, err := parseDocument(data, source)
	if err != nil {
		return err
	}
	for rawID, form := range doc.Forms {
		id := strings.TrimSpace(rawID)
		if id == "" {
			return fmt.Errorf("descriptor: file %s defines an empty form id", source)
		}
		if prev, exists := s.sources[id]; exists {
			return fmt.Errorf("descriptor: duplicate form %q (files %s and %s)", id, prev, source)
		}
		normalised, err := normaliseForm(form, id, source)
		if err != nil {
			return err
		}
		s.forms[id] = normalised
		s.sources[id] = source
	}
	return nil
}

// Form returns a copy of the form registered under id.
func (s *Store) Form(id string) (model.FormModel, bool) {
	if s == nil {
		return model.FormModel{}, false
	}
	form, ok := s.forms[id]
	if !ok {
		return model.FormModel{}, false
	}
	return cloneForm(form), true
}

// Build returns the form registered under id with decorators applied.
func (s *Store) Build(id string, decorators ...model.Decorator) (model.FormModel, error) {
	form, ok := s.Form(id)
	if !ok {
		return model.FormModel{}, fmt.Errorf("%w: %q", ErrFormNotFound, id)
	}
	if err := model.Apply(&form, decorators...); err != nil {
		return model.FormModel{}, fmt.Errorf("descriptor: decorate %q: %w", id, err)
	}
	return form, nil
}

// IDs lists the registered form ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.forms) == 0
}

func parseDocument(data []byte, source string) (documentFile, error) {
	var doc documentFile
	if len(strings.TrimSpace(string(data))) == 0 {
		return documentFile{}, fmt.Errorf("descriptor: file %s is empty", source)
	}

	if err := json.Unmarshal(data, &doc); err == nil {
		return doc, nil
	}

	doc = documentFile{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return documentFile{}, fmt.Errorf("descriptor: parse %s: invalid JSON or YAML: %w", source, err)
	}
	return doc, nil
}

func normaliseForm(raw model.FormModel, id, source string) (model.FormModel, error) {
	form := cloneForm(raw)
	form.ID = id
	if len(form.Fields) == 0 {
		return model.FormModel{}, fmt.Errorf("descriptor: form %q (file %s) declares no fields", id, source)
	}

	for i := range form.Fields {
		field := &form.Fields[i]
		field.Name = strings.TrimSpace(field.Name)
		if field.Name == "" {
			return model.FormModel{}, fmt.Errorf("descriptor: form %q (file %s) field %d has no name", id, source, i)
		}
		if field.Type == "" {
			field.Type = model.FieldTypeString
		}
		switch field.Type {
		case model.FieldTypeString, model.FieldTypeInteger, model.FieldTypeNumber, model.FieldTypeBoolean:
		default:
			return model.FormModel{}, fmt.Errorf("descriptor: form %q (file %s) field %q has unsupported type %q", id, source, field.Name, field.Type)
		}
		if field.Label == "" {
			field.Label = model.DefaultLabeler(field.Name)
		}
	}
	return form, nil
}

func cloneForm(form model.FormModel) model.FormModel {
	out := form
	out.Metadata = cloneStrings(form.Metadata)
	out.Fields = make([]model.Field, len(form.Fields))
	for i, field := range form.Fields {
		cloned := field
		cloned.Enum = append([]any(nil), field.Enum...)
		cloned.Validations = append([]model.ValidationRule(nil), field.Validations...)
		cloned.Metadata = cloneStrings(field.Metadata)
		cloned.UIHints = cloneStrings(field.UIHints)
		if field.Derived != nil {
			derived := *field.Derived
			derived.Mapping = cloneStrings(field.Derived.Mapping)
			cloned.Derived = &derived
		}
		out.Fields[i] = cloned
	}
	return out
}

func cloneStrings(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func isDescriptorFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
