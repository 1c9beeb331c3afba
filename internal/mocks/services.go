package mocks

import (
	"context"

	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/service"
)

// MockTopicService is a mock implementation of TopicService
type MockTopicService struct {
	Topics []models.Topic
	Err    error
}

var _ service.TopicService = (*MockTopicService)(nil)

func NewMockTopicService() *MockTopicService {
	return &MockTopicService{Topics: make([]models.Topic, 0)}
}

func (m *MockTopicService) ListTopics(ctx context.Context) ([]models.Topic, error) {
	return m.Topics, m.Err
}

// MockArticleService is a mock implementation of ArticleService
type MockArticleService struct {
	ListFunc   func(ctx context.Context, q service.ArticleQuery) ([]models.ArticleSummary, error)
	GetFunc    func(ctx context.Context, id int) (*models.Article, error)
	UpdateFunc func(ctx context.Context, id int, update *models.VoteUpdate) (*models.Article, error)
	LastQuery  service.ArticleQuery
}

var _ service.ArticleService = (*MockArticleService)(nil)

func NewMockArticleService() *MockArticleService {
	return &MockArticleService{}
}

func (m *MockArticleService) ListArticles(ctx context.Context, q service.ArticleQuery) ([]models.ArticleSummary, error) {
	m.LastQuery = q
	if m.ListFunc != nil {
		return m.ListFunc(ctx, q)
	}
	return make([]models.ArticleSummary, 0), nil
}

func (m *MockArticleService) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &models.Article{}, nil
}

func (m *MockArticleService) UpdateArticleVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Article, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return &models.Article{}, nil
}

// MockCommentService is a mock implementation of CommentService
type MockCommentService struct {
	ListFunc   func(ctx context.Context, articleID int) ([]models.Comment, error)
	CreateFunc func(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error)
	DeleteFunc func(ctx context.Context, id int) error
	UpdateFunc func(ctx context.Context, id int, update *models.VoteUpdate) (*models.Comment, error)
}

var _ service.CommentService = (*MockCommentService)(nil)

func NewMockCommentService() *MockCommentService {
	return &MockCommentService{}
}

func (m *MockCommentService) ListArticleComments(ctx context.Context, articleID int) ([]models.Comment, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, articleID)
	}
	return make([]models.Comment, 0), nil
}

func (m *MockCommentService) CreateComment(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, articleID, req)
	}
	return &models.Comment{ArticleID: articleID, Author: req.Username, Body: req.Body}, nil
}

func (m *MockCommentService) DeleteComment(ctx context.Context, id int) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockCommentService) UpdateCommentVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Comment, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, update)
	}
	return &models.Comment{CommentID: id}, nil
}

// MockUserService is a mock implementation of UserService
type MockUserService struct {
	Users map[string]*models.User
}

var _ service.UserService = (*MockUserService)(nil)

func NewMockUserService() *MockUserService {
	return &MockUserService{Users: make(map[string]*models.User)}
}

func (m *MockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, *u)
	}
	return users, nil
}

func (m *MockUserService) GetUser(ctx context.Context, username string) (*models.User, error) {
	if u, ok := m.Users[username]; ok {
		return u, nil
	}
	return nil, apperror.NotFound("User not found!")
}
