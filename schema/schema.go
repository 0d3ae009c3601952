// Package schema holds the typed request payloads for the CMS API together
// with their validation rules. Validation is pure: a payload either comes back
// normalized or the caller gets a ValidationError listing every violated
// field, never a partial result.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"juniorcars/common"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return common.IsValidSlug(fl.Field().String())
	})
	// media URLs may be regular URLs or embedded data-URLs
	v.RegisterValidation("mediaurl", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if strings.HasPrefix(s, "data:") {
			return true
		}
		return v.Var(s, "url") == nil
	})
	return v
}

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError enumerates every violated field constraint of a payload.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldError(fe validator.FieldError) FieldError {
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "email":
		msg = fmt.Sprintf("%s must be a valid email address", field)
	case "url", "mediaurl":
		msg = fmt.Sprintf("%s must be a valid URL", field)
	case "slug":
		msg = fmt.Sprintf("%s must contain only lowercase letters, digits and hyphens", field)
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "gte":
		msg = fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		msg = fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		msg = fmt.Sprintf("%s is too short (min %s)", field, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s is too long (max %s)", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
	return FieldError{Field: field, Rule: fe.Tag(), Message: msg}
}

// Check validates any schema input and converts validator errors into a
// ValidationError enumerating all failing fields.
func Check(input interface{}) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	ve := &ValidationError{}
	for _, fe := range verrs {
		ve.Fields = append(ve.Fields, fieldError(fe))
	}
	return ve
}

// NewValidationError builds a single-field error for checks that live outside
// struct tags (unknown query keys, malformed numbers, cycle detection).
func NewValidationError(field, rule, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Rule: rule, Message: message}}}
}

type ContentBlockInput struct {
	Type       string          `json:"type" validate:"required,oneof=hero carousel text image html"`
	Data       json.RawMessage `json:"data"`
	OrderIndex int             `json:"orderIndex" validate:"gte=0"`
}

type CreatePageInput struct {
	Title         string              `json:"title" validate:"required,min=1,max=200"`
	Slug          string              `json:"slug" validate:"omitempty,slug"`
	Content       string              `json:"content"`
	HeroData      json.RawMessage     `json:"heroData"`
	CarouselData  json.RawMessage     `json:"carouselData"`
	SEOData       json.RawMessage     `json:"seoData"`
	Published     *bool               `json:"published"` // defaults false
	ContentBlocks []ContentBlockInput `json:"contentBlocks" validate:"omitempty,dive"`
}

type UpdatePageInput struct {
	Title         *string              `json:"title" validate:"omitempty,min=1,max=200"`
	Slug          *string              `json:"slug" validate:"omitempty,slug"`
	Content       *string              `json:"content"`
	HeroData      json.RawMessage      `json:"heroData"`
	CarouselData  json.RawMessage      `json:"carouselData"`
	SEOData       json.RawMessage      `json:"seoData"`
	Published     *bool                `json:"published"`
	ContentBlocks *[]ContentBlockInput `json:"contentBlocks" validate:"omitempty,dive"`
}

type CreateCarSeriesInput struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Slug           string          `json:"slug" validate:"omitempty,slug"`
	Description    string          `json:"description"`
	Specifications json.RawMessage `json:"specifications"`
	Price          float64         `json:"price" validate:"gte=0"`
	HeroData       json.RawMessage `json:"heroData"`
	CarouselData   json.RawMessage `json:"carouselData"`
	Published      *bool           `json:"published"`
}

type UpdateCarSeriesInput struct {
	Name           *string         `json:"name" validate:"omitempty,min=1,max=200"`
	Slug           *string         `json:"slug" validate:"omitempty,slug"`
	Description    *string         `json:"description"`
	Specifications json.RawMessage `json:"specifications"`
	Price          *float64        `json:"price" validate:"omitempty,gte=0"`
	HeroData       json.RawMessage `json:"heroData"`
	CarouselData   json.RawMessage `json:"carouselData"`
	Published      *bool           `json:"published"`
}

type CreateNavigationInput struct {
	Label      string `json:"label" validate:"required,min=1,max=100"`
	URL        string `json:"url"`
	ParentID   *uint  `json:"parentId"`
	OrderIndex int    `json:"orderIndex" validate:"gte=0"`
	IsActive   *bool  `json:"isActive"` // defaults true
	IsExternal *bool  `json:"isExternal"`
	Target     string `json:"target" validate:"omitempty,oneof=_self _blank"`
}

type UpdateNavigationInput struct {
	Label       *string `json:"label" validate:"omitempty,min=1,max=100"`
	URL         *string `json:"url"`
	ParentID    *uint   `json:"parentId"`
	ClearParent bool    `json:"clearParent"`
	OrderIndex  *int    `json:"orderIndex" validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"isActive"`
	IsExternal  *bool   `json:"isExternal"`
	Target      *string `json:"target" validate:"omitempty,oneof=_self _blank"`
}

type CreateMediaInput struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	URL          string `json:"url" validate:"required,mediaurl"`
	AltText      string `json:"altText"`
	Size         int64  `json:"size" validate:"gte=0"`
	MimeType     string `json:"mimeType"`
	Width        int    `json:"width" validate:"gte=0"`
	Height       int    `json:"height" validate:"gte=0"`
}

type UpdateMediaInput struct {
	Filename     *string `json:"filename"`
	OriginalName *string `json:"originalName"`
	URL          *string `json:"url" validate:"omitempty,mediaurl"`
	AltText      *string `json:"altText"`
	Size         *int64  `json:"size" validate:"omitempty,gte=0"`
	MimeType     *string `json:"mimeType"`
	Width        *int    `json:"width" validate:"omitempty,gte=0"`
	Height       *int    `json:"height" validate:"omitempty,gte=0"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
