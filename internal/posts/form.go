package posts

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	IntentCreate = "create"
	IntentUpdate = "update"
	IntentDelete = "delete"
)

// CreateSlug is the admin route slug that addresses a post that does not exist yet.
const CreateSlug = "create"

// slugPattern is the URL-unreserved character set, so a slug is one path
// segment as written.
var slugPattern = regexp.MustCompile(`^[A-Za-z0-9._~-]+$`)

// reserved slugs collide with admin routes under /posts or are dot segments
// that path cleaning would remove.
var reservedSlugs = map[string]struct{}{
	".":      {},
	"..":     {},
	"admin":  {},
	"create": {},
}

var formValidator = newFormValidator()

// PostForm is the admin form body, decoded once at the request boundary.
type PostForm struct {
	Intent   string
	Title    string `validate:"notblank"`
	Slug     string `validate:"notblank,slug,unreserved"`
	Markdown string `validate:"notblank"`
}

// FieldErrors carries one message per invalid field; empty means valid.
type FieldErrors struct {
	Title    string
	Slug     string
	Markdown string
}

func (e FieldErrors) Any() bool {
	return e.Title != "" || e.Slug != "" || e.Markdown != ""
}

func ParsePostForm(values url.Values) PostForm {
	return PostForm{
		Intent:   strings.TrimSpace(values.Get("intent")),
		Title:    strings.TrimSpace(values.Get("title")),
		Slug:     strings.TrimSpace(values.Get("slug")),
		Markdown: values.Get("markdown"),
	}
}

func (f PostForm) IsDelete() bool {
	return f.Intent == IntentDelete
}

// Validate yields either a complete Post or the set of field errors.
func (f PostForm) Validate() (Post, FieldErrors) {
	err := formValidator.Struct(f)
	if err == nil {
		return Post{Slug: f.Slug, Title: f.Title, Markdown: f.Markdown}, FieldErrors{}
	}

	var fieldErrs FieldErrors
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		fieldErrs.Slug = err.Error()
		return Post{}, fieldErrs
	}

	for _, fieldErr := range validationErrs {
		message := fieldMessage(fieldErr)
		switch fieldErr.Field() {
		case "Title":
			fieldErrs.Title = message
		case "Slug":
			fieldErrs.Slug = message
		case "Markdown":
			fieldErrs.Markdown = message
		}
	}
	return Post{}, fieldErrs
}

// IsValidSlug reports whether slug can address a post.
func IsValidSlug(slug string) bool {
	if !slugPattern.MatchString(slug) {
		return false
	}
	_, reserved := reservedSlugs[slug]
	return !reserved
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "notblank":
		return fieldErr.Field() + " is required"
	case "slug":
		return "Slug may only contain letters, digits and - . _ ~"
	case "unreserved":
		return `Slug "` + fieldErr.Value().(string) + `" is reserved`
	default:
		return fieldErr.Field() + " is invalid"
	}
}

func newFormValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "unreserved", func(fl validator.FieldLevel) bool {
		_, reserved := reservedSlugs[fl.Field().String()]
		return !reserved
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}
