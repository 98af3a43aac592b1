// Package model holds the records persisted by the repository layer and the
// request payloads accepted by the handlers, one sub-package per resource.
package model

import "time"

// Base carries the columns every table has.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
