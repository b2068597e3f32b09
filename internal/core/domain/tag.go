package domain

import "time"

// Tag is a named label attached to prompts.
type Tag struct {
	// ID is the unique identifier.
	ID int64 `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Slug is the URL-safe form of Name. Unique; collisions are resolved
	// with a numeric suffix at creation time.
	Slug string `json:"slug"`

	// CreatedAt is when the tag was created.
	CreatedAt time.Time `json:"created_at"`
}

// TagCount pairs a tag with the number of prompts it is linked to.
type TagCount struct {
	Tag

	// Count is the number of live prompts carrying this tag.
	Count int `json:"count"`
}
