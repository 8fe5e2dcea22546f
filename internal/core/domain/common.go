package domain

import "time"

// Timestamps holds the creation and last-modification times shared by mutable entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
