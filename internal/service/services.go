package service

import (
	"context"

	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/repository"
	"github.com/news-board-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleQuery carries the raw listing parameters of a request
type ArticleQuery struct {
	Topic  string
	SortBy string
	Order  string
}

// TopicService defines the interface for topic operations
type TopicService interface {
	ListTopics(ctx context.Context) ([]models.Topic, error)
}

// ArticleService defines the interface for article operations
type ArticleService interface {
	ListArticles(ctx context.Context, q ArticleQuery) ([]models.ArticleSummary, error)
	GetArticle(ctx context.Context, id int) (*models.Article, error)
	UpdateArticleVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Article, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListArticleComments(ctx context.Context, articleID int) ([]models.Comment, error)
	CreateComment(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
	UpdateCommentVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Comment, error)
}

// UserService defines the interface for user operations
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// Services holds all service interfaces
type Services struct {
	Topic   TopicService
	Article ArticleService
	Comment CommentService
	User    UserService
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, log zerolog.Logger) *Services {
	validator := validation.NewValidator()

	return &Services{
		Topic:   newTopicService(repos.Topic),
		Article: newArticleService(repos.Article, repos.Checker, validator, log),
		Comment: newCommentService(repos.Comment, repos.Checker, validator, log),
		User:    newUserService(repos.User),
	}
}
