// Package render holds the pieces shared by every consumer of an engine:
// the Renderer contract, serialisation of submitted values and mapping of
// externally produced error payloads back onto form fields.
package render
