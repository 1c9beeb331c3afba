package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/news-board-api/internal/database"
	"github.com/news-board-api/internal/models"
)

// userRepo is the concrete implementation of UserRepository
type userRepo struct {
	db *database.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *database.DB) UserRepository {
	return &userRepo{db: db}
}

// List returns every user
func (r *userRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT username, name, avatar_url FROM users ORDER BY username`)
	if err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// GetByUsername retrieves a user by username
func (r *userRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT username, name, avatar_url FROM users WHERE username = $1`, username)

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return user, err
}

func scanUser(s rowScanner) (*models.User, error) {
	var user models.User
	var avatar sql.NullString
	if err := s.Scan(&user.Username, &user.Name, &avatar); err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	user.AvatarURL = avatar.String
	return &user, nil
}
