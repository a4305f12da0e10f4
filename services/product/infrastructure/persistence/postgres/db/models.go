package db

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID              uuid.UUID
	Name            string
	Description     string
	Sku             string
	Manufacturer    string
	Quantity        int32
	DateAdded       time.Time
	DateLastUpdated time.Time
	OwnerUserID     uuid.UUID
}
