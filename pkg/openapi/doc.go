// Package openapi builds form models from OpenAPI component schemas so a form
// can be declared next to the API that eventually receives its submissions.
// kin-openapi handles loading; callers only see model.FormModel.
//
// Recognised keywords: required, title, description, default, enum, format
// (email), minimum/exclusiveMinimum, maximum, minLength, maxLength, pattern.
// Extensions under the x-formgen namespace add what OpenAPI cannot express:
// x-formgen-order (component level) fixes field order, x-formgen-derived
// declares a derivation and x-formgen-ui-hints carries renderer hints.
package openapi
