// Package openapi derives form widget fields from the request body of an
// OpenAPI 3 operation using kin-openapi.
package openapi
