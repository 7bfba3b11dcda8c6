package models

// EntityKind names a table that can be checked for existence.
type EntityKind string

const (
	EntityArticle EntityKind = "articles"
	EntityComment EntityKind = "comments"
	EntityTopic   EntityKind = "topics"
	EntityUser    EntityKind = "users"
)

// TableCounts holds row counts per table.
type TableCounts struct {
	Topics   int `json:"topics"`
	Users    int `json:"users"`
	Articles int `json:"articles"`
	Comments int `json:"comments"`
}
