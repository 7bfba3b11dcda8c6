package validation

import (
	"math"
	"net/url"
	"testing"

	"github.com/news-api/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateArticleQuery_Defaults(t *testing.T) {
	q, err := ValidateArticleQuery(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "", q.Topic)
	assert.Equal(t, SortByCreatedAt, q.SortBy)
	assert.Equal(t, OrderDesc, q.Order)
	assert.Equal(t, 10, q.Limit)
	assert.Equal(t, 0, q.PageIndex)
	assert.Equal(t, 0, q.Offset())

	q, err = ValidateArticleQuery(map[string]string{"topic": ""})
	require.NoError(t, err)
	assert.Equal(t, "", q.Topic)
	assert.Equal(t, SortByCreatedAt, q.SortBy)
	assert.Equal(t, 10, q.Limit)
}

func TestValidateArticleQuery_HugePageDoesNotOverflow(t *testing.T) {
	q, err := ValidateArticleQuery(map[string]string{"limit": "4611686018427387904", "p": "3"})
	require.NoError(t, err)
	assert.Equal(t, 4611686018427387904, q.Limit)
	assert.Equal(t, 2, q.PageIndex)
	assert.Equal(t, math.MaxInt, q.Offset())

	page, err := ValidatePageQuery(map[string]string{"limit": "4611686018427387904", "p": "3"})
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, page.Offset())
}

func TestSafeOffset(t *testing.T) {
	tests := []struct {
		pageIndex, limit, want int
	}{
		{0, 10, 0},
		{3, 4, 12},
		{-1, 10, 0},
		{5, 0, 0},
		{2, math.MaxInt, math.MaxInt},
		{math.MaxInt, 2, math.MaxInt},
		{1, math.MaxInt, math.MaxInt},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SafeOffset(tt.pageIndex, tt.limit), "SafeOffset(%d, %d)", tt.pageIndex, tt.limit)
	}
}

func TestValidateArticleQuery_AllParams(t *testing.T) {
	q, err := ValidateArticleQuery(map[string]string{
		"topic":   "mitch",
		"sort_by": "comment_count",
		"order":   "AsC",
		"limit":   "4",
		"p":       "4",
	})
	require.NoError(t, err)

	assert.Equal(t, "mitch", q.Topic)
	assert.Equal(t, SortByCommentCount, q.SortBy)
	assert.Equal(t, OrderAsc, q.Order)
	assert.Equal(t, 4, q.Limit)
	assert.Equal(t, 3, q.PageIndex)
	assert.Equal(t, 12, q.Offset())
}

func TestValidateArticleQuery_SortColumns(t *testing.T) {
	for _, name := range []string{"author", "title", "article_id", "topic", "created_at", "votes", "article_img_url", "comment_count"} {
		q, err := ValidateArticleQuery(map[string]string{"sort_by": name})
		require.NoError(t, err, name)
		assert.Equal(t, name, q.SortBy.String())
	}
}

func TestValidateArticleQuery_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]string
	}{
		{"unknown key alone", map[string]string{"colour": "red"}},
		{"unknown key among valid ones", map[string]string{"topic": "mitch", "sort_by": "votes", "zzz": "1"}},
		{"unknown key sorting first", map[string]string{"aaa": "1", "limit": "5"}},
		{"sort_by not allowed", map[string]string{"sort_by": "body"}},
		{"sort_by injection", map[string]string{"sort_by": "votes; DROP TABLE articles"}},
		{"sort_by empty", map[string]string{"sort_by": ""}},
		{"order not allowed", map[string]string{"order": "sideways"}},
		{"order empty", map[string]string{"order": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateArticleQuery(tt.raw)
			require.Error(t, err)
			assert.True(t, apperror.IsBadRequest(err))
		})
	}
}

func TestValidateArticleQuery_PaginationFallback(t *testing.T) {
	tests := []struct {
		name      string
		limit     string
		page      string
		wantLimit int
		wantIndex int
	}{
		{"non-numeric limit", "invalid", "", 10, 0},
		{"zero limit", "0", "", 10, 0},
		{"negative limit", "-3", "", 10, 0},
		{"non-numeric page", "5", "second", 5, 0},
		{"zero page", "5", "0", 5, 0},
		{"fractional page", "5", "1.5", 5, 0},
		{"valid", "3", "2", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := map[string]string{"limit": tt.limit}
			if tt.page != "" {
				raw["p"] = tt.page
			}
			q, err := ValidateArticleQuery(raw)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantIndex, q.PageIndex)
		})
	}

	// ?limit=invalid behaves exactly like no limit at all
	withInvalid, err := ValidateArticleQuery(map[string]string{"limit": "invalid"})
	require.NoError(t, err)
	without, err := ValidateArticleQuery(map[string]string{})
	require.NoError(t, err)
	assert.Equal(t, without, withInvalid)
}

func TestValidatePageQuery(t *testing.T) {
	q, err := ValidatePageQuery(map[string]string{"limit": "2", "p": "3"})
	require.NoError(t, err)
	assert.Equal(t, 2, q.Limit)
	assert.Equal(t, 4, q.Offset())

	q, err = ValidatePageQuery(nil)
	require.NoError(t, err)
	assert.Equal(t, PageQuery{Limit: 10}, q)

	_, err = ValidatePageQuery(map[string]string{"sort_by": "votes"})
	assert.True(t, apperror.IsBadRequest(err))
}

func TestFlattenQuery(t *testing.T) {
	values, err := url.ParseQuery("topic=cats&topic=mitch&limit=")
	require.NoError(t, err)

	raw := FlattenQuery(values)
	assert.Equal(t, map[string]string{"topic": "cats", "limit": ""}, raw)
}

func TestParseID(t *testing.T) {
	id, err := ParseID("article_id", "12")
	require.NoError(t, err)
	assert.Equal(t, 12, id)

	for _, bad := range []string{"banana", "", "1.5", "99999999999999999999"} {
		_, err := ParseID("article_id", bad)
		assert.True(t, apperror.IsBadRequest(err), bad)
	}
}
