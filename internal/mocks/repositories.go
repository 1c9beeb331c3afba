package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/query"
	"github.com/news-board-api/internal/repository"
)

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	Topics    []models.Topic
	ListError error
}

var _ repository.TopicRepository = (*MockTopicRepository)(nil)

func NewMockTopicRepository() *MockTopicRepository {
	return &MockTopicRepository{Topics: make([]models.Topic, 0)}
}

func (m *MockTopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Topics, nil
}

// MockArticleRepository is a mock implementation of ArticleRepository.
// List returns Summaries as given and records the statement it was asked to run.
type MockArticleRepository struct {
	mu            sync.Mutex
	Articles      map[int]*models.Article
	Summaries     []models.ArticleSummary
	ListFunc      func(ctx context.Context, stmt query.Statement) ([]models.ArticleSummary, error)
	ListError     error
	LastStatement *query.Statement
}

var _ repository.ArticleRepository = (*MockArticleRepository)(nil)

func NewMockArticleRepository() *MockArticleRepository {
	return &MockArticleRepository{
		Articles:  make(map[int]*models.Article),
		Summaries: make([]models.ArticleSummary, 0),
	}
}

func (m *MockArticleRepository) List(ctx context.Context, stmt query.Statement) ([]models.ArticleSummary, error) {
	m.mu.Lock()
	m.LastStatement = &stmt
	m.mu.Unlock()

	if m.ListFunc != nil {
		return m.ListFunc(ctx, stmt)
	}
	if m.ListError != nil {
		return nil, m.ListError
	}
	return m.Summaries, nil
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	copied := *article
	return &copied, nil
}

func (m *MockArticleRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	article, ok := m.Articles[id]
	if !ok {
		return nil, nil
	}
	article.Votes += delta
	copied := *article
	return &copied, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	mu          sync.Mutex
	Comments    map[int]*models.Comment
	nextID      int
	CreateError error
	CreateCalls int
}

var _ repository.CommentRepository = (*MockCommentRepository)(nil)

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[int]*models.Comment)}
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comments := make([]models.Comment, 0)
	for _, c := range m.Comments {
		if c.ArticleID == articleID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt.Time)
	})
	return comments, nil
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls++
	if m.CreateError != nil {
		return m.CreateError
	}
	for id := range m.Comments {
		if id > m.nextID {
			m.nextID = id
		}
	}
	m.nextID++
	comment.CommentID = m.nextID
	stored := *comment
	m.Comments[comment.CommentID] = &stored
	return nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	delete(m.Comments, id)
	return comment, nil
}

func (m *MockCommentRepository) IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	comment, ok := m.Comments[id]
	if !ok {
		return nil, nil
	}
	comment.Votes += delta
	copied := *comment
	return &copied, nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users map[string]*models.User
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{Users: make(map[string]*models.User)}
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, len(m.Users))
	for _, u := range m.Users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return m.Users[username], nil
}

// MockChecker is a mock implementation of ExistenceChecker backed by a set of
// known values per table
type MockChecker struct {
	mu     sync.Mutex
	Known  map[string]map[string]bool
	Err    error
	Checks []string
}

var _ repository.ExistenceChecker = (*MockChecker)(nil)

func NewMockChecker() *MockChecker {
	return &MockChecker{Known: make(map[string]map[string]bool)}
}

// Add registers value as existing for ref
func (m *MockChecker) Add(ref repository.Reference, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Known[ref.Table] == nil {
		m.Known[ref.Table] = make(map[string]bool)
	}
	m.Known[ref.Table][fmt.Sprint(value)] = true
}

func (m *MockChecker) Exists(ctx context.Context, ref repository.Reference, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Checks = append(m.Checks, fmt.Sprintf("%s.%s=%v", ref.Table, ref.Column, value))
	if m.Err != nil {
		return m.Err
	}
	if !m.Known[ref.Table][fmt.Sprint(value)] {
		return apperror.NotFound(ref.NotFoundMessage())
	}
	return nil
}
