// Package orchestrator resolves a form model from one of the supported
// sources (bundled descriptors, a descriptor file, an OpenAPI component),
// applies decorators and hands an engine to a renderer. It is the single entry
// point the CLI and most callers need.
package orchestrator
