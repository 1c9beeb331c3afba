package query

import (
	"fmt"
	"strings"
)

// Statement is a rendered SQL statement and its bound arguments
type Statement struct {
	SQL  string
	Args []interface{}
}

const articleSummaryColumns = `articles.article_id, articles.title, articles.topic, articles.author,
		articles.created_at, articles.votes, articles.article_img_url,
		COUNT(comments.comment_id)::int AS comment_count`

// ArticleListBuilder collects the optional clauses of an article listing
type ArticleListBuilder struct {
	predicates []string
	args       []interface{}
	sort       Sort
}

// ArticleList starts a listing sorted by the default sort
func ArticleList() *ArticleListBuilder {
	return &ArticleListBuilder{sort: DefaultSort()}
}

// bind appends a value and returns its placeholder
func (b *ArticleListBuilder) bind(value interface{}) string {
	b.args = append(b.args, value)
	return fmt.Sprintf("$%d", len(b.args))
}

// WhereTopic filters by topic, compared in lower case. An empty topic adds no filter.
func (b *ArticleListBuilder) WhereTopic(topic string) *ArticleListBuilder {
	if topic == "" {
		return b
	}
	b.predicates = append(b.predicates, "LOWER(articles.topic) = "+b.bind(strings.ToLower(topic)))
	return b
}

// OrderBy sets the sort. Only a Sort returned by ParseSort or DefaultSort renders.
func (b *ArticleListBuilder) OrderBy(sort Sort) *ArticleListBuilder {
	b.sort = sort
	return b
}

// Build renders the statement
func (b *ArticleListBuilder) Build() (Statement, error) {
	if b.sort.Column() == "" {
		return Statement{}, fmt.Errorf("unknown sort field %q", b.sort.Field)
	}
	if _, ok := directions[string(b.sort.Direction)]; !ok {
		return Statement{}, fmt.Errorf("unknown sort direction %q", b.sort.Direction)
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(articleSummaryColumns)
	sb.WriteString("\n\tFROM articles\n\tLEFT JOIN comments ON comments.article_id = articles.article_id")
	if len(b.predicates) > 0 {
		sb.WriteString("\n\tWHERE ")
		sb.WriteString(strings.Join(b.predicates, " AND "))
	}
	sb.WriteString("\n\tGROUP BY articles.article_id")
	sb.WriteString("\n\tORDER BY ")
	sb.WriteString(b.sort.SQL())

	args := make([]interface{}, len(b.args))
	copy(args, b.args)
	return Statement{SQL: sb.String(), Args: args}, nil
}
