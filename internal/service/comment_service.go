package service

import (
	"context"
	"fmt"
	"time"

	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/repository"
	"github.com/news-board-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments  repository.CommentRepository
	checker   repository.ExistenceChecker
	validator *validation.Validator
	log       zerolog.Logger
	now       func() time.Time
}

// newCommentService creates a new CommentService
func newCommentService(comments repository.CommentRepository, checker repository.ExistenceChecker,
	validator *validation.Validator, log zerolog.Logger) *commentService {
	return &commentService{
		comments:  comments,
		checker:   checker,
		validator: validator,
		log:       log.With().Str("service", "comment").Logger(),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func commentNotFound(id int) error {
	return apperror.NotFound(fmt.Sprintf("Comment with id %d does not exist!", id))
}

// ListArticleComments returns an article's comments, newest first. An article
// without comments yields an empty slice; a missing article is a 404.
func (s *commentService) ListArticleComments(ctx context.Context, articleID int) ([]models.Comment, error) {
	var comments []models.Comment
	err := allOf(ctx,
		func(ctx context.Context) error {
			var err error
			comments, err = s.comments.ListByArticle(ctx, articleID)
			return err
		},
		func(ctx context.Context) error {
			return s.checker.Exists(ctx, repository.ArticleByID, articleID)
		},
	)
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateComment validates and stores a new comment. Unknown articles or
// usernames are rejected by the store's foreign keys.
func (s *commentService) CreateComment(ctx context.Context, articleID int, req *models.NewComment) (*models.Comment, error) {
	if err := s.validator.ValidateNewComment(req); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Body:      req.Body,
		ArticleID: articleID,
		Author:    req.Username,
		Votes:     0,
		CreatedAt: models.NewTimestamp(s.now()),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.log.Info().
		Int("comment_id", comment.CommentID).
		Int("article_id", articleID).
		Str("author", comment.Author).
		Msg("Comment created")

	return comment, nil
}

// DeleteComment removes a comment permanently
func (s *commentService) DeleteComment(ctx context.Context, id int) error {
	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return err
	}
	if deleted == nil {
		return commentNotFound(id)
	}

	s.log.Info().Int("comment_id", id).Msg("Comment deleted")
	return nil
}

// UpdateCommentVotes applies a relative vote change to a comment
func (s *commentService) UpdateCommentVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Comment, error) {
	if err := s.validator.ValidateVoteUpdate(update); err != nil {
		return nil, err
	}

	comment, err := s.comments.IncrementVotes(ctx, id, *update.IncVotes)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, commentNotFound(id)
	}
	return comment, nil
}
