package repository

import (
	"context"

	"github.com/news-board-api/internal/database"
	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/query"
)

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]models.Topic, error)
}

// ArticleRepository defines the interface for article data operations.
// Lookups return nil without error when no row matches.
type ArticleRepository interface {
	List(ctx context.Context, stmt query.Statement) ([]models.ArticleSummary, error)
	GetByID(ctx context.Context, id int) (*models.Article, error)
	IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int) (*models.Comment, error)
	IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// ExistenceChecker verifies that a referenced row exists. A missing row is
// reported as a 404 application error.
type ExistenceChecker interface {
	Exists(ctx context.Context, ref Reference, value interface{}) error
}

// Repositories holds all repository interfaces
type Repositories struct {
	Topic   TopicRepository
	Article ArticleRepository
	Comment CommentRepository
	User    UserRepository
	Checker ExistenceChecker
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Topic:   NewTopicRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
		User:    NewUserRepo(db),
		Checker: NewChecker(db),
	}
}

// rowScanner is satisfied by *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}
