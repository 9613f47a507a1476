package models

import (
	"github.com/oklog/ulid/v2"
)

// NewID returns a ULID string. ULIDs sort by creation time, which keeps
// id a stable tie-breaker for created_at ordering.
func NewID() string {
	return ulid.Make().String()
}
