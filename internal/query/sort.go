// Package query builds the parameterized SQL used by article listings.
//
// Client-supplied sort tokens are checked against fixed allow-lists and only
// the normalized allow-listed token ever reaches the SQL text. Every other
// variable input is a bound argument.
package query

import (
	"fmt"
	"strings"

	"github.com/news-board-api/internal/apperror"
)

// Direction is a validated ORDER BY direction
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

const (
	// DefaultSortField is used when no sort_by is supplied
	DefaultSortField = "created_at"
	// DefaultDirection is used when no order is supplied
	DefaultDirection = Desc
)

// sortColumns maps each allowed sort field to the expression rendered in
// ORDER BY. Joined tables share column names, so article columns are qualified.
var sortColumns = map[string]string{
	"article_id":    "articles.article_id",
	"title":         "articles.title",
	"topic":         "articles.topic",
	"author":        "articles.author",
	"created_at":    "articles.created_at",
	"votes":         "articles.votes",
	"comment_count": "comment_count",
}

var directions = map[string]Direction{
	"asc":  Asc,
	"desc": Desc,
}

// Sort is a validated sort specification
type Sort struct {
	Field     string
	Direction Direction
}

// DefaultSort returns created_at descending
func DefaultSort() Sort {
	return Sort{Field: DefaultSortField, Direction: DefaultDirection}
}

// Column returns the SQL expression for the sort field
func (s Sort) Column() string {
	return sortColumns[s.Field]
}

// SQL renders the ORDER BY body, e.g. "articles.votes DESC"
func (s Sort) SQL() string {
	return s.Column() + " " + strings.ToUpper(string(s.Direction))
}

// IsSortField reports whether field (case-insensitive) is an allowed sort field
func IsSortField(field string) bool {
	_, ok := sortColumns[strings.ToLower(field)]
	return ok
}

// ParseSort validates sortBy and order independently. Empty values fall back
// to the defaults. When either is invalid, every problem is reported in one
// 400 error, sort field first.
func ParseSort(sortBy, order string) (Sort, error) {
	sort := DefaultSort()
	var problems []string

	if sortBy != "" {
		field := strings.ToLower(sortBy)
		if _, ok := sortColumns[field]; ok {
			sort.Field = field
		} else {
			problems = append(problems, fmt.Sprintf("Bad request! %s is not a valid sort field.", sortBy))
		}
	}

	if order != "" {
		if dir, ok := directions[strings.ToLower(order)]; ok {
			sort.Direction = dir
		} else {
			problems = append(problems, fmt.Sprintf("Bad request! %s is not a valid order type.", order))
		}
	}

	if len(problems) > 0 {
		return Sort{}, apperror.BadRequest(strings.Join(problems, " "))
	}
	return sort, nil
}
