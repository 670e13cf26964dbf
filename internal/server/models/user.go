// Package models holds backend-only record types. Wire-visible types live in
// the shared domain package; these add fields that never leave the server.
package models

import (
	domain "github.com/internova/internova/internal/models"
)

// User is a stored account together with its credential hash. The hash never
// crosses the API boundary.
type User struct {
	domain.Account
	PasswordHash string
}
