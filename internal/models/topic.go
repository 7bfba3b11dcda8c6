package models

// Topic is a category articles are filed under, keyed by slug.
type Topic struct {
	Slug        string `json:"slug" db:"slug" validate:"notblank"`
	Description string `json:"description" db:"description" validate:"notblank"`
}
