package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/news-board-api/internal/database"
	"github.com/news-board-api/internal/models"
	"github.com/news-board-api/internal/query"
)

const selectArticleByID = `
		SELECT articles.article_id, articles.title, articles.topic, articles.author,
			articles.created_at, articles.votes, articles.article_img_url,
			COUNT(comments.comment_id)::int AS comment_count, articles.body
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		WHERE articles.article_id = $1
		GROUP BY articles.article_id
	`

// votes is changed relative to the stored value
const incrementArticleVotes = `
		WITH updated AS (
			UPDATE articles SET votes = votes + $1 WHERE article_id = $2 RETURNING *
		)
		SELECT updated.article_id, updated.title, updated.topic, updated.author,
			updated.created_at, updated.votes, updated.article_img_url,
			(SELECT COUNT(*) FROM comments WHERE comments.article_id = updated.article_id)::int AS comment_count,
			updated.body
		FROM updated
	`

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

// List runs a statement built by query.ArticleList
func (r *articleRepo) List(ctx context.Context, stmt query.Statement) ([]models.ArticleSummary, error) {
	rows, err := r.db.QueryContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("select articles: %w", err)
	}
	defer rows.Close()

	articles := make([]models.ArticleSummary, 0)
	for rows.Next() {
		var a models.ArticleSummary
		err := rows.Scan(
			&a.ArticleID, &a.Title, &a.Topic, &a.Author,
			&a.CreatedAt, &a.Votes, &a.ArticleImgURL, &a.CommentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// GetByID retrieves an article with its comment count
func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.Article, error) {
	article, err := scanArticle(r.db.QueryRowContext(ctx, selectArticleByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select article %d: %w", id, err)
	}
	return article, nil
}

// IncrementVotes adds delta to the article's votes and returns the updated row
func (r *articleRepo) IncrementVotes(ctx context.Context, id, delta int) (*models.Article, error) {
	article, err := scanArticle(r.db.QueryRowContext(ctx, incrementArticleVotes, delta, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update article %d votes: %w", id, err)
	}
	return article, nil
}

func scanArticle(s rowScanner) (*models.Article, error) {
	var a models.Article
	err := s.Scan(
		&a.ArticleID, &a.Title, &a.Topic, &a.Author,
		&a.CreatedAt, &a.Votes, &a.ArticleImgURL, &a.CommentCount, &a.Body,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
