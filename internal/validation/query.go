package validation

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/news-api/internal/apperror"
)

// Pagination defaults.
const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// SortColumn is a column an article listing may be ordered by. Values are
// only produced by ParseSortColumn, so anything reaching the query builder is
// already on the allow-list.
type SortColumn struct {
	name string
}

var (
	SortByAuthor        = SortColumn{"author"}
	SortByTitle         = SortColumn{"title"}
	SortByArticleID     = SortColumn{"article_id"}
	SortByTopic         = SortColumn{"topic"}
	SortByCreatedAt     = SortColumn{"created_at"}
	SortByVotes         = SortColumn{"votes"}
	SortByArticleImgURL = SortColumn{"article_img_url"}
	SortByCommentCount  = SortColumn{"comment_count"}
)

var sortColumns = map[string]SortColumn{
	SortByAuthor.name:        SortByAuthor,
	SortByTitle.name:         SortByTitle,
	SortByArticleID.name:     SortByArticleID,
	SortByTopic.name:         SortByTopic,
	SortByCreatedAt.name:     SortByCreatedAt,
	SortByVotes.name:         SortByVotes,
	SortByArticleImgURL.name: SortByArticleImgURL,
	SortByCommentCount.name:  SortByCommentCount,
}

// ParseSortColumn looks name up in the allow-list.
func ParseSortColumn(name string) (SortColumn, bool) {
	col, ok := sortColumns[name]
	return col, ok
}

// String returns the column name; the zero value reads as created_at.
func (c SortColumn) String() string {
	if c.name == "" {
		return SortByCreatedAt.name
	}
	return c.name
}

// SortOrder is the direction of an article listing.
type SortOrder string

const (
	OrderAsc  SortOrder = "ASC"
	OrderDesc SortOrder = "DESC"
)

// ParseSortOrder accepts asc or desc in any case.
func ParseSortOrder(s string) (SortOrder, bool) {
	switch strings.ToLower(s) {
	case "asc":
		return OrderAsc, true
	case "desc":
		return OrderDesc, true
	default:
		return "", false
	}
}

// ArticleQuery is a normalized article listing request.
type ArticleQuery struct {
	Topic     string // empty means no topic filter
	SortBy    SortColumn
	Order     SortOrder
	Limit     int
	PageIndex int // zero-indexed
}

// Offset is the number of rows to skip before the requested page.
func (q ArticleQuery) Offset() int {
	return SafeOffset(q.PageIndex, q.Limit)
}

// PageQuery is a normalized limit/page pair for nested listings.
type PageQuery struct {
	Limit     int
	PageIndex int
}

// Offset is the number of rows to skip before the requested page.
func (q PageQuery) Offset() int {
	return SafeOffset(q.PageIndex, q.Limit)
}

// SafeOffset multiplies a zero-indexed page by its size, saturating at
// math.MaxInt instead of wrapping negative.
func SafeOffset(pageIndex, limit int) int {
	if pageIndex < 1 || limit < 1 {
		return 0
	}
	if pageIndex > math.MaxInt/limit {
		return math.MaxInt
	}
	return pageIndex * limit
}

var (
	articleQueryKeys = map[string]bool{"topic": true, "sort_by": true, "order": true, "limit": true, "p": true}
	pageQueryKeys    = map[string]bool{"limit": true, "p": true}
)

// FlattenQuery keeps the first value of every query-string key.
func FlattenQuery(values url.Values) map[string]string {
	raw := make(map[string]string, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			raw[key] = vals[0]
		} else {
			raw[key] = ""
		}
	}
	return raw
}

// ValidateArticleQuery checks raw query parameters for an article listing.
// Unknown keys, an unknown sort_by and an unknown order are rejected.
// Malformed limit and p values fall back to their defaults instead.
func ValidateArticleQuery(raw map[string]string) (ArticleQuery, error) {
	if err := checkKeys(raw, articleQueryKeys); err != nil {
		return ArticleQuery{}, err
	}

	q := ArticleQuery{
		Topic:  raw["topic"],
		SortBy: SortByCreatedAt,
		Order:  OrderDesc,
	}

	if v, ok := raw["sort_by"]; ok {
		col, valid := ParseSortColumn(v)
		if !valid {
			return ArticleQuery{}, apperror.BadRequest(fmt.Sprintf("invalid sort_by %q", v))
		}
		q.SortBy = col
	}

	if v, ok := raw["order"]; ok {
		order, valid := ParseSortOrder(v)
		if !valid {
			return ArticleQuery{}, apperror.BadRequest(fmt.Sprintf("invalid order %q", v))
		}
		q.Order = order
	}

	q.Limit, q.PageIndex = parsePagination(raw)
	return q, nil
}

// ValidatePageQuery checks raw query parameters that only allow limit and p.
func ValidatePageQuery(raw map[string]string) (PageQuery, error) {
	if err := checkKeys(raw, pageQueryKeys); err != nil {
		return PageQuery{}, err
	}
	limit, pageIndex := parsePagination(raw)
	return PageQuery{Limit: limit, PageIndex: pageIndex}, nil
}

// checkKeys rejects the request if any key falls outside allowed. Keys are
// visited in sorted order so the reported key is deterministic.
func checkKeys(raw map[string]string, allowed map[string]bool) error {
	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !allowed[key] {
			return apperror.BadRequest(fmt.Sprintf("unknown query parameter %q", key))
		}
	}
	return nil
}

func parsePagination(raw map[string]string) (limit, pageIndex int) {
	return positiveIntOr(raw["limit"], DefaultLimit), positiveIntOr(raw["p"], DefaultPage) - 1
}

func positiveIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// ParseID parses a numeric path identifier.
func ParseID(name, s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, apperror.BadRequest(fmt.Sprintf("invalid %s %q", name, s))
	}
	return id, nil
}
