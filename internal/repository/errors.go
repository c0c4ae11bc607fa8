// Package repository holds the raw-SQL persistence layer. Sentinel errors
// defined here let services and handlers distinguish failure modes without
// inspecting database error strings.
package repository

import "errors"

// ErrNotFound is returned when a row does not exist or belongs to another
// organization. Handlers translate it into an HTTP 404.
var ErrNotFound = errors.New("not found")
