package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/news-api/internal/apperror"
	"github.com/news-api/internal/models"
)

// Validator checks request bodies against their `validate` struct tags.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator that reports fields by their json names
// and understands the notblank tag.
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// registration only fails for an empty tag or nil func
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

// ValidateNewComment requires both username and body.
func (v *Validator) ValidateNewComment(c *models.NewComment) error {
	return v.check(c)
}

// ValidateNewArticle requires author, title, body and topic.
func (v *Validator) ValidateNewArticle(a *models.NewArticle) error {
	return v.check(a)
}

// ValidateNewTopic requires slug and description.
func (v *Validator) ValidateNewTopic(t *models.Topic) error {
	return v.check(t)
}

// ValidateVoteUpdate requires inc_votes.
func (v *Validator) ValidateVoteUpdate(u *models.VoteUpdate) error {
	return v.check(u)
}

func (v *Validator) check(s interface{}) error {
	if s == nil || reflect.ValueOf(s).IsNil() {
		return apperror.BadRequest("missing request body")
	}

	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		fields := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields = append(fields, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
		return apperror.BadRequest(strings.Join(fields, "; "))
	}
	return apperror.BadRequest(err.Error())
}
