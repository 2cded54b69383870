// Package mealdb provides the HTTP client for TheMealDB JSON API.
//
// Every operation is a single GET against the configured base URL followed by
// a JSON decode into one of the envelope types. Transport failures, timeouts
// and non-2xx statuses wrap ErrNetwork; malformed or mis-shaped bodies wrap
// ErrDecode. Inputs are passed through untouched so upstream semantics govern
// empty or unusual queries.
package mealdb
