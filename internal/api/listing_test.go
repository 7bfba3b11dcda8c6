package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/news-api/internal/api"
	"github.com/news-api/internal/mocks"
	"github.com/news-api/internal/models"
	"github.com/news-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupListingRouter wires the real services over in-memory repositories.
func setupListingRouter(t *testing.T) (*gin.Engine, *mocks.MockArticleRepository, *mocks.MockExistenceChecker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repos, articles, _, exists := mocks.NewMockRepositories()
	router := api.NewRouter(service.NewServices(repos, zerolog.Nop()), fakeDB{}, zerolog.Nop())

	batch := make([]*models.Article, 0, 13)
	for i := 1; i <= 13; i++ {
		topic := "mitch"
		if i == 5 {
			topic = "cats"
		}
		batch = append(batch, &models.Article{ArticleID: i, Topic: topic, Author: "icellusedkars", Title: "t", Body: "b"})
	}
	_, err := articles.BatchInsert(context.Background(), batch)
	require.NoError(t, err)

	for _, slug := range []string{"mitch", "cats", "paper"} {
		exists.Add(models.EntityTopic, slug)
	}
	return router, articles, exists
}

func TestListing_DefaultPage(t *testing.T) {
	router, _, _ := setupListingRouter(t)

	w := doRequest(router, "GET", "/api/articles", "")
	require.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	assert.Len(t, response["articles"], 10)
	assert.Equal(t, float64(13), response["total_count"])
}

func TestListing_TopicFilters(t *testing.T) {
	router, _, _ := setupListingRouter(t)

	w := doRequest(router, "GET", "/api/articles?topic=cats", "")
	require.Equal(t, http.StatusOK, w.Code)

	response := decode(t, w)
	articles := response["articles"].([]interface{})
	require.Len(t, articles, 1)
	assert.Equal(t, "cats", articles[0].(map[string]interface{})["topic"])
	assert.Equal(t, float64(1), response["total_count"])
}

func TestListing_ExistingTopicWithoutArticles(t *testing.T) {
	router, _, _ := setupListingRouter(t)

	w := doRequest(router, "GET", "/api/articles?topic=paper", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"articles":[],"total_count":0}`, w.Body.String())
}

func TestListing_UnknownTopic(t *testing.T) {
	router, _, _ := setupListingRouter(t)

	w := doRequest(router, "GET", "/api/articles?topic=not-a-topic", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"msg":"Not Found"}`, w.Body.String())
}

func TestListing_RejectedQueriesSkipTheStore(t *testing.T) {
	router, articles, exists := setupListingRouter(t)

	for _, query := range []string{
		"?colour=red",
		"?topic=mitch&colour=red",
		"?sort_by=body",
		"?sort_by=votes%3BDROP%20TABLE%20articles",
		"?order=sideways",
	} {
		w := doRequest(router, "GET", "/api/articles"+query, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, query)
		assert.JSONEq(t, `{"msg":"Bad Request"}`, w.Body.String(), query)
	}
	assert.Empty(t, articles.ListCalls)
	assert.Zero(t, exists.CallCount())
}

func TestListing_MalformedPaginationFallsBack(t *testing.T) {
	router, articles, _ := setupListingRouter(t)

	w := doRequest(router, "GET", "/api/articles?limit=abc&p=-2", "")
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, articles.ListCalls, 1)
	assert.Equal(t, 10, articles.ListCalls[0].Limit)
	assert.Equal(t, 0, articles.ListCalls[0].PageIndex)
}

func TestListing_PageBeyondEnd(t *testing.T) {
	router, _, _ := setupListingRouter(t)

	w := doRequest(router, "GET", "/api/articles?limit=5&p=10", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"articles":[],"total_count":13}`, w.Body.String())
}

func TestPostComment_MissingBodyBeatsMissingArticle(t *testing.T) {
	router, _, exists := setupListingRouter(t)

	w := doRequest(router, "POST", "/api/articles/999/comments", `{"username":"butter_bridge"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Zero(t, exists.CallCount())

	w = doRequest(router, "POST", "/api/articles/999/comments", `{"username":"butter_bridge","body":"hi"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
