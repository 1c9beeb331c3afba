package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/news-board-api/internal/api"
	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/config"
	"github.com/news-board-api/internal/mocks"
	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/repository"
	"github.com/news-board-api/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServices struct {
	topics   *mocks.MockTopicService
	articles *mocks.MockArticleService
	comments *mocks.MockCommentService
	users    *mocks.MockUserService
}

func setupTestRouter() (*gin.Engine, *testServices) {
	gin.SetMode(gin.TestMode)

	ts := &testServices{
		topics:   mocks.NewMockTopicService(),
		articles: mocks.NewMockArticleService(),
		comments: mocks.NewMockCommentService(),
		users:    mocks.NewMockUserService(),
	}

	services := &service.Services{
		Topic:   ts.topics,
		Article: ts.articles,
		Comment: ts.comments,
		User:    ts.users,
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: "9090"},
	}

	router := api.NewRouter(services, nil, cfg, zerolog.Nop())
	return router, ts
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func assertMsg(t *testing.T, w *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	assert.Equal(t, status, w.Code)
	assert.Equal(t, msg, decode(t, w)["msg"])
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := setupTestRouter()

	w := do(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "news-board-api", body["service"])
}

type failingHealth struct{}

func (failingHealth) HealthCheck(ctx context.Context) error { return errors.New("connection refused") }

func TestHealthEndpoint_DatabaseDown(t *testing.T) {
	gin.SetMode(gin.TestMode)
	services := &service.Services{
		Topic:   mocks.NewMockTopicService(),
		Article: mocks.NewMockArticleService(),
		Comment: mocks.NewMockCommentService(),
		User:    mocks.NewMockUserService(),
	}
	router := api.NewRouter(services, failingHealth{}, &config.Config{}, zerolog.Nop())

	w := do(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "unhealthy", decode(t, w)["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter()
	do(router, http.MethodGet, "/api/topics", "")

	w := do(router, http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "news_board_http_requests_total")
}

func TestRequestIDHeader(t *testing.T) {
	router, _ := setupTestRouter()

	w := do(router, http.MethodGet, "/api/topics", "")

	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestEndpoints(t *testing.T) {
	router, _ := setupTestRouter()

	w := do(router, http.MethodGet, "/api", "")

	require.Equal(t, http.StatusOK, w.Code)
	endpoints, ok := decode(t, w)["endpoints"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{
		"GET /api/topics",
		"GET /api/articles",
		"GET /api/articles/:article_id",
		"PATCH /api/articles/:article_id",
		"GET /api/articles/:article_id/comments",
		"POST /api/articles/:article_id/comments",
		"DELETE /api/comments/:comment_id",
		"GET /api/users",
	} {
		assert.Contains(t, endpoints, key)
	}
}

func TestListTopics(t *testing.T) {
	router, ts := setupTestRouter()
	ts.topics.Topics = []models.Topic{
		{Slug: "mitch", Description: "The man, the Mitch, the legend"},
		{Slug: "cats", Description: "Not dogs"},
	}

	w := do(router, http.MethodGet, "/api/topics", "")

	require.Equal(t, http.StatusOK, w.Code)
	topics := decode(t, w)["topics"].([]interface{})
	require.Len(t, topics, 2)
	assert.Equal(t, "mitch", topics[0].(map[string]interface{})["slug"])
}

func TestUnknownRoutes(t *testing.T) {
	router, _ := setupTestRouter()

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/not-a-route"},
		{http.MethodGet, "/nope"},
		{http.MethodPut, "/api/articles/1"},
		{http.MethodPost, "/api/topics"},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			assertMsg(t, do(router, tc.method, tc.path, ""), http.StatusNotFound, "Not found!")
		})
	}
}

func TestListArticles_PassesQuery(t *testing.T) {
	router, ts := setupTestRouter()
	ts.articles.ListFunc = func(ctx context.Context, q service.ArticleQuery) ([]models.ArticleSummary, error) {
		return []models.ArticleSummary{{ArticleID: 1, Topic: "mitch", CommentCount: 11}}, nil
	}

	w := do(router, http.MethodGet, "/api/articles?topic=Mitch&sort_by=votes&order=asc", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.ArticleQuery{Topic: "Mitch", SortBy: "votes", Order: "asc"}, ts.articles.LastQuery)
	articles := decode(t, w)["articles"].([]interface{})
	require.Len(t, articles, 1)
	article := articles[0].(map[string]interface{})
	assert.Equal(t, float64(11), article["comment_count"])
	assert.NotContains(t, article, "body")
}

func TestListArticles_EmptyIsAnArray(t *testing.T) {
	router, _ := setupTestRouter()

	w := do(router, http.MethodGet, "/api/articles?topic=paper", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"articles":[]}`, w.Body.String())
}

func TestGetArticle(t *testing.T) {
	router, ts := setupTestRouter()
	ts.articles.GetFunc = func(ctx context.Context, id int) (*models.Article, error) {
		if id != 1 {
			return nil, apperror.NotFound("Article not found!")
		}
		return &models.Article{
			ArticleSummary: models.ArticleSummary{ArticleID: 1, Title: "Living in the shadow of a great man", Votes: 100, CommentCount: 11},
			Body:           "I find this existence challenging",
		}, nil
	}

	t.Run("found", func(t *testing.T) {
		w := do(router, http.MethodGet, "/api/articles/1", "")
		require.Equal(t, http.StatusOK, w.Code)
		article := decode(t, w)["article"].(map[string]interface{})
		assert.Equal(t, float64(1), article["article_id"])
		assert.Equal(t, "I find this existence challenging", article["body"])
		assert.Equal(t, float64(11), article["comment_count"])
	})

	t.Run("missing", func(t *testing.T) {
		assertMsg(t, do(router, http.MethodGet, "/api/articles/999", ""), http.StatusNotFound, "Article not found!")
	})

	t.Run("not a number", func(t *testing.T) {
		assertMsg(t, do(router, http.MethodGet, "/api/articles/banana", ""), http.StatusBadRequest, "Bad request!")
	})
}

func TestUpdateArticleVotes(t *testing.T) {
	router, ts := setupTestRouter()
	var gotDelta int
	ts.articles.UpdateFunc = func(ctx context.Context, id int, update *models.VoteUpdate) (*models.Article, error) {
		if update.IncVotes == nil {
			return nil, apperror.BadRequest("Bad request! Missing required field(s): inc_votes.")
		}
		gotDelta = *update.IncVotes
		return &models.Article{ArticleSummary: models.ArticleSummary{ArticleID: id, Votes: 100 + gotDelta}}, nil
	}

	w := do(router, http.MethodPatch, "/api/articles/1", `{"inc_votes": -666}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, -666, gotDelta)
	assert.Equal(t, float64(-566), decode(t, w)["updatedArticle"].(map[string]interface{})["votes"])

	assertMsg(t, do(router, http.MethodPatch, "/api/articles/1", `{}`),
		http.StatusBadRequest, "Bad request! Missing required field(s): inc_votes.")
	assertMsg(t, do(router, http.MethodPatch, "/api/articles/1", `{"inc_votes": "abc"}`),
		http.StatusBadRequest, "Bad request!")
	assertMsg(t, do(router, http.MethodPatch, "/api/articles/1", `{"inc_votes":`),
		http.StatusBadRequest, "Bad request!")
	assertMsg(t, do(router, http.MethodPatch, "/api/articles/abc", `{"inc_votes": 1}`),
		http.StatusBadRequest, "Bad request!")
}

func TestListArticleComments(t *testing.T) {
	router, ts := setupTestRouter()
	ts.comments.ListFunc = func(ctx context.Context, articleID int) ([]models.Comment, error) {
		if articleID == 999 {
			return nil, apperror.NotFound("Article not found!")
		}
		return []models.Comment{{CommentID: 5, ArticleID: articleID}, {CommentID: 2, ArticleID: articleID}}, nil
	}

	w := do(router, http.MethodGet, "/api/articles/1/comments", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["articleComments"], 2)

	assertMsg(t, do(router, http.MethodGet, "/api/articles/999/comments", ""), http.StatusNotFound, "Article not found!")
	assertMsg(t, do(router, http.MethodGet, "/api/articles/one/comments", ""), http.StatusBadRequest, "Bad request!")
}

func TestCreateComment(t *testing.T) {
	router, ts := setupTestRouter()
	var got *models.NewComment
	ts.comments.CreateFunc = func(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error) {
		got = req
		return &models.Comment{CommentID: 19, ArticleID: articleID, Author: req.Username, Body: req.Body}, nil
	}

	w := do(router, http.MethodPost, "/api/articles/1/comments",
		`{"username": "butter_bridge", "body": "What a read!", "votes": 9000}`)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, &models.NewComment{Username: "butter_bridge", Body: "What a read!"}, got)
	comment := decode(t, w)["addedComment"].(map[string]interface{})
	assert.Equal(t, float64(19), comment["comment_id"])
	assert.Equal(t, "butter_bridge", comment["author"])
	assert.Equal(t, float64(0), comment["votes"])

	assertMsg(t, do(router, http.MethodPost, "/api/articles/1/comments", `not json`), http.StatusBadRequest, "Bad request!")
}

func TestCreateComment_DriverErrors(t *testing.T) {
	router, ts := setupTestRouter()

	for _, code := range []pq.ErrorCode{"23503", "23502", "22P02", "22003"} {
		t.Run(string(code), func(t *testing.T) {
			ts.comments.CreateFunc = func(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error) {
				return nil, fmt.Errorf("insert comment: %w", &pq.Error{Code: code})
			}
			w := do(router, http.MethodPost, "/api/articles/999/comments", `{"username": "ghost", "body": "boo"}`)
			assertMsg(t, w, http.StatusBadRequest, "Bad request!")
		})
	}
}

func TestServerErrors(t *testing.T) {
	router, ts := setupTestRouter()

	t.Run("unclassified error", func(t *testing.T) {
		ts.topics.Err = errors.New("connection reset by peer")
		defer func() { ts.topics.Err = nil }()

		w := do(router, http.MethodGet, "/api/topics", "")
		assertMsg(t, w, http.StatusInternalServerError, "Internal Server Error")
		assert.NotContains(t, w.Body.String(), "connection reset")
	})

	t.Run("unmapped driver code", func(t *testing.T) {
		ts.topics.Err = fmt.Errorf("select topics: %w", &pq.Error{Code: "42P01"})
		defer func() { ts.topics.Err = nil }()

		assertMsg(t, do(router, http.MethodGet, "/api/topics", ""), http.StatusInternalServerError, "Internal Server Error")
	})

	t.Run("panic", func(t *testing.T) {
		ts.articles.GetFunc = func(ctx context.Context, id int) (*models.Article, error) {
			panic("boom")
		}
		defer func() { ts.articles.GetFunc = nil }()

		assertMsg(t, do(router, http.MethodGet, "/api/articles/1", ""), http.StatusInternalServerError, "Internal Server Error")
	})
}

func TestDeleteComment(t *testing.T) {
	router, ts := setupTestRouter()
	ts.comments.DeleteFunc = func(ctx context.Context, id int) error {
		if id != 1 {
			return apperror.NotFound(fmt.Sprintf("Comment with id %d does not exist!", id))
		}
		return nil
	}

	w := do(router, http.MethodDelete, "/api/comments/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.Bytes())

	assertMsg(t, do(router, http.MethodDelete, "/api/comments/999", ""), http.StatusNotFound, "Comment with id 999 does not exist!")
	assertMsg(t, do(router, http.MethodDelete, "/api/comments/abc", ""), http.StatusBadRequest, "Bad request!")
}

func TestUpdateCommentVotes(t *testing.T) {
	router, ts := setupTestRouter()
	ts.comments.UpdateFunc = func(ctx context.Context, id int, update *models.VoteUpdate) (*models.Comment, error) {
		return &models.Comment{CommentID: id, Votes: 16 + *update.IncVotes}, nil
	}

	w := do(router, http.MethodPatch, "/api/comments/1", `{"inc_votes": -1}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(15), decode(t, w)["updatedComment"].(map[string]interface{})["votes"])
}

func TestUsers(t *testing.T) {
	router, ts := setupTestRouter()
	ts.users.Users["butter_bridge"] = &models.User{Username: "butter_bridge", Name: "jonny", AvatarURL: "https://example.com/a.jpg"}

	w := do(router, http.MethodGet, "/api/users", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"], 1)

	w = do(router, http.MethodGet, "/api/users/butter_bridge", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "jonny", decode(t, w)["user"].(map[string]interface{})["name"])

	assertMsg(t, do(router, http.MethodGet, "/api/users/nobody", ""), http.StatusNotFound, "User not found!")
}

// newServiceRouter wires the real services over in-memory repositories so the
// error chain sees the exact failures the domain produces.
func newServiceRouter() (*gin.Engine, *mocks.MockArticleRepository) {
	gin.SetMode(gin.TestMode)

	articles := mocks.NewMockArticleRepository()
	checker := mocks.NewMockChecker()
	checker.Add(repository.TopicSlug, "mitch")
	checker.Add(repository.TopicSlug, "paper")
	checker.Add(repository.ArticleByID, 1)

	services := service.NewServices(&repository.Repositories{
		Topic:   mocks.NewMockTopicRepository(),
		Article: articles,
		Comment: mocks.NewMockCommentRepository(),
		User:    mocks.NewMockUserRepository(),
		Checker: checker,
	}, zerolog.Nop())

	return api.NewRouter(services, nil, &config.Config{}, zerolog.Nop()), articles
}

func TestDomainErrorsThroughTheChain(t *testing.T) {
	router, _ := newServiceRouter()

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		msg    string
	}{
		{"invalid sort field", http.MethodGet, "/api/articles?sort_by=banana", "", 400,
			"Bad request! banana is not a valid sort field."},
		{"invalid order", http.MethodGet, "/api/articles?order=sideways", "", 400,
			"Bad request! sideways is not a valid order type."},
		{"invalid sort and order", http.MethodGet, "/api/articles?sort_by=banana&order=sideways", "", 400,
			"Bad request! banana is not a valid sort field. Bad request! sideways is not a valid order type."},
		{"invalid sort beats missing topic", http.MethodGet, "/api/articles?topic=dogs&sort_by=banana", "", 400,
			"Bad request! banana is not a valid sort field."},
		{"missing topic", http.MethodGet, "/api/articles?topic=dogs", "", 404, "Topic not found!"},
		{"missing article comments", http.MethodGet, "/api/articles/999/comments", "", 404, "Article not found!"},
		{"missing comment fields", http.MethodPost, "/api/articles/1/comments", `{}`, 400,
			"Bad request! Missing required field(s): body, username."},
		{"blank comment body", http.MethodPost, "/api/articles/1/comments", `{"username":"butter_bridge","body":"  "}`, 400,
			"Bad request! Missing required field(s): body."},
		{"missing inc_votes", http.MethodPatch, "/api/comments/1", `{"votes": 1}`, 400,
			"Bad request! Missing required field(s): inc_votes."},
		{"missing comment", http.MethodDelete, "/api/comments/42", "", 404, "Comment with id 42 does not exist!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertMsg(t, do(router, tt.method, tt.path, tt.body), tt.status, tt.msg)
		})
	}
}

func TestSortValidationIsCaseInsensitive(t *testing.T) {
	router, articles := newServiceRouter()

	w := do(router, http.MethodGet, "/api/articles?topic=MITCH&sort_by=VOTES&order=ASC", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, articles.LastStatement.SQL, "ORDER BY articles.votes ASC")
	assert.Equal(t, []interface{}{"mitch"}, articles.LastStatement.Args)
}

func TestCreateCommentBodyIsJSON(t *testing.T) {
	router, _ := newServiceRouter()
	body, err := json.Marshal(map[string]string{"username": "butter_bridge", "body": "<script>alert(1)</script>"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/articles/1/comments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	comment := decode(t, w)["addedComment"].(map[string]interface{})
	assert.Equal(t, "<script>alert(1)</script>", comment["body"])
	assert.Equal(t, float64(0), comment["votes"])
	assert.Equal(t, float64(1), comment["article_id"])
}
