package service

import (
	"context"
	"strings"

	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/query"
	"github.com/news-board-api/internal/repository"
	"github.com/news-board-api/internal/validation"
	"github.com/rs/zerolog"
)

const msgArticleNotFound = "Article not found!"

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles  repository.ArticleRepository
	checker   repository.ExistenceChecker
	validator *validation.Validator
	log       zerolog.Logger
}

// newArticleService creates a new ArticleService
func newArticleService(articles repository.ArticleRepository, checker repository.ExistenceChecker,
	validator *validation.Validator, log zerolog.Logger) *articleService {
	return &articleService{
		articles:  articles,
		checker:   checker,
		validator: validator,
		log:       log.With().Str("service", "article").Logger(),
	}
}

// ListArticles validates the sort, builds the listing and, when filtering by
// topic, checks the topic exists alongside the main query.
func (s *articleService) ListArticles(ctx context.Context, q ArticleQuery) ([]models.ArticleSummary, error) {
	sort, err := query.ParseSort(q.SortBy, q.Order)
	if err != nil {
		return nil, err
	}

	stmt, err := query.ArticleList().WhereTopic(q.Topic).OrderBy(sort).Build()
	if err != nil {
		return nil, err
	}

	s.log.Debug().
		Str("topic", q.Topic).
		Str("sort", sort.SQL()).
		Msg("Listing articles")

	var articles []models.ArticleSummary
	list := func(ctx context.Context) error {
		var err error
		articles, err = s.articles.List(ctx, stmt)
		return err
	}

	if q.Topic == "" {
		if err := list(ctx); err != nil {
			return nil, err
		}
		return articles, nil
	}

	topic := strings.ToLower(q.Topic)
	err = allOf(ctx, list, func(ctx context.Context) error {
		return s.checker.Exists(ctx, repository.TopicSlug, topic)
	})
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticle returns a single article with its comment count
func (s *articleService) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NotFound(msgArticleNotFound)
	}
	return article, nil
}

// UpdateArticleVotes applies a relative vote change
func (s *articleService) UpdateArticleVotes(ctx context.Context, id int, update *models.VoteUpdate) (*models.Article, error) {
	if err := s.validator.ValidateVoteUpdate(update); err != nil {
		return nil, err
	}

	article, err := s.articles.IncrementVotes(ctx, id, *update.IncVotes)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, apperror.NotFound(msgArticleNotFound)
	}

	s.log.Info().
		Int("article_id", id).
		Int("inc_votes", *update.IncVotes).
		Int("votes", article.Votes).
		Msg("Article votes updated")

	return article, nil
}
