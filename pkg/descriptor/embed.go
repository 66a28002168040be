package descriptor

import (
	"embed"
	"io/fs"
)

//go:embed forms/*
var embeddedForms embed.FS

// EmbeddedFS returns the bundled form definitions. Callers may pass this
// filesystem to LoadFS to use the default forms.
func EmbeddedFS() fs.FS {
	sub, err := fs.Sub(embeddedForms, "forms")
	if err != nil {
		// The embed directive guarantees the subpath exists, so panic is
		// acceptable here.
		panic(err)
	}
	return sub
}

// Embedded loads the bundled form definitions.
func Embedded() (*Store, error) {
	return LoadFS(EmbeddedFS())
}
