package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/news-board-api/internal/database"
	"github.com/news-board-api/internal/models"
)

const commentColumns = `comment_id, body, article_id, author, votes, created_at`

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListByArticle returns an article's comments, newest first
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE article_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("select comments: %w", err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *comment)
	}

	return comments, rows.Err()
}

// Create inserts a new comment and fills in the generated id
func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	query := `
		INSERT INTO comments (body, article_id, author, votes, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + commentColumns
	created, err := scanComment(r.db.QueryRowContext(ctx, query,
		comment.Body, comment.ArticleID, comment.Author, comment.Votes, comment.CreatedAt,
	))
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	*comment = *created
	return nil
}

// Delete removes a comment and returns it, or nil if there was none
func (r *commentRepo) Delete(ctx context.Context, id int) (*models.Comment, error) {
	query := `DELETE FROM comments WHERE comment_id = $1 RETURNING ` + commentColumns
	comment, err := scanComment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete comment %d: %w", id, err)
	}
	return comment, nil
}

// IncrementVotes adds delta to the comment's votes and returns the updated row
func (r *commentRepo) IncrementVotes(ctx context.Context, id, delta int) (*models.Comment, error) {
	query := `UPDATE comments SET votes = votes + $1 WHERE comment_id = $2 RETURNING ` + commentColumns
	comment, err := scanComment(r.db.QueryRowContext(ctx, query, delta, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update comment %d votes: %w", id, err)
	}
	return comment, nil
}

func scanComment(s rowScanner) (*models.Comment, error) {
	var c models.Comment
	err := s.Scan(&c.CommentID, &c.Body, &c.ArticleID, &c.Author, &c.Votes, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
