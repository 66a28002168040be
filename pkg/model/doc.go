// Package model defines the typed form model shared by the engine, the
// descriptor loaders and renderers. A FormModel is a declarative list of field
// descriptors ({name, kind, rules}); validation rules use canonical kinds
// (email, positive, integer, oneOf, accepted, min/max, minLength/maxLength,
// pattern) with string parameters so descriptors stay stable when serialised
// to JSON or YAML. Derived fields carry a Derivation naming their source field
// and the value mapping applied whenever that source changes. The curated
// UIHints map holds renderer-facing directives such as `sanitize` or
// `helpText` that the engine itself never reads.
package model
