package domain

import "github.com/google/uuid"

// CatalogEntry is one active row of a reference catalog. Code is empty for
// catalogs without a short code.
type CatalogEntry struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Code string `db:"code" json:"code,omitempty"`
}

// DirectoryUser is an active user as seen by the name resolver.
type DirectoryUser struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Name string    `db:"name" json:"name"`
}

// Option is an integer-keyed dropdown entry.
type Option struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ProjectOption is an approved project available for voucher assignment.
type ProjectOption struct {
	ID   uuid.UUID `db:"id" json:"id"`
	Code string    `db:"code" json:"code"`
	Name string    `db:"name" json:"name"`
}

// CatalogOptions bundles the dropdown sources for voucher management.
type CatalogOptions struct {
	Zones      []Option        `json:"zones"`
	Categories []Option        `json:"categories"`
	Projects   []ProjectOption `json:"projects"`
	Buyers     []DirectoryUser `json:"buyers"`
}
