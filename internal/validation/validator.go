package validation

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/news-board-api/internal/apperror"
	"github.com/news-board-api/internal/models"
)

// Validator checks the shape of request bodies before they reach storage
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateNewComment requires a non-blank username and body
func (v *Validator) ValidateNewComment(c *models.NewComment) error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.Username, validation.Required, validation.By(notBlank)),
		validation.Field(&c.Body, validation.Required, validation.By(notBlank)),
	)
	return toBadRequest(err)
}

// ValidateVoteUpdate requires inc_votes to be present. Zero is a valid delta.
func (v *Validator) ValidateVoteUpdate(u *models.VoteUpdate) error {
	err := validation.ValidateStruct(u,
		validation.Field(&u.IncVotes, validation.NotNil),
	)
	return toBadRequest(err)
}

func notBlank(value interface{}) error {
	if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// toBadRequest turns field errors into one 400 naming the offending fields
func toBadRequest(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	return apperror.BadRequest("Bad request! Missing required field(s): " + strings.Join(fields, ", ") + ".")
}
