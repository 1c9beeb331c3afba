package repository

import (
	"context"
	"fmt"

	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/database"
)

// Reference names a column that other operations refer to by value. Table and
// column are rendered into SQL, so only the references declared here are accepted.
type Reference struct {
	Table    string
	Column   string
	Resource string // used in the not-found message
}

var (
	TopicSlug      = Reference{Table: "topics", Column: "slug", Resource: "Topic"}
	ArticleByID    = Reference{Table: "articles", Column: "article_id", Resource: "Article"}
	UserByUsername = Reference{Table: "users", Column: "username", Resource: "User"}
)

var knownReferences = map[Reference]bool{
	TopicSlug:      true,
	ArticleByID:    true,
	UserByUsername: true,
}

// NotFoundMessage is the client message for a missing referenced row
func (r Reference) NotFoundMessage() string {
	return r.Resource + " not found!"
}

func (r Reference) existsQuery() string {
	return fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)", r.Table, r.Column)
}

// checker is the concrete implementation of ExistenceChecker
type checker struct {
	db *database.DB
}

// NewChecker creates a new existence checker
func NewChecker(db *database.DB) ExistenceChecker {
	return &checker{db: db}
}

// Exists returns nil when a row of ref matches value
func (c *checker) Exists(ctx context.Context, ref Reference, value interface{}) error {
	if !knownReferences[ref] {
		return fmt.Errorf("unknown reference %s.%s", ref.Table, ref.Column)
	}

	var exists bool
	if err := c.db.QueryRowContext(ctx, ref.existsQuery(), value).Scan(&exists); err != nil {
		return fmt.Errorf("check %s exists: %w", ref.Table, err)
	}
	if !exists {
		return apperror.NotFound(ref.NotFoundMessage())
	}
	return nil
}
