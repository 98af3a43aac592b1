package post

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/post-api/internal/validation"
)

// GetPostPayload is bound from GET /post/:id.
type GetPostPayload struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (p *GetPostPayload) Validate() error {
	return validation.Struct(p)
}

// ListPostsPayload is bound from GET /post. It has no fields.
type ListPostsPayload struct{}

func (p *ListPostsPayload) Validate() error {
	return nil
}

// CreatePostPayload is the body of POST /post.
type CreatePostPayload struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (p *CreatePostPayload) Validate() error {
	return validation.Struct(p)
}

// UpdatePostPayload is bound from PUT /post/:id.
//
// The handler pipeline binds and validates the path id only. The body is
// decoded and checked by BindBody once the post is known to exist, so a
// missing post reports 404 before any body error, malformed JSON included.
type UpdatePostPayload struct {
	ID      int64  `param:"id" json:"-" validate:"required,min=1"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (p *UpdatePostPayload) Validate() error {
	return validation.StructPartial(p, "ID")
}

// BindBody decodes the JSON body into p and validates title and content.
func (p *UpdatePostPayload) BindBody(c echo.Context) error {
	if err := validation.BindBody(c, p); err != nil {
		return err
	}
	return validation.Check(p.ValidateBody())
}

func (p *UpdatePostPayload) ValidateBody() error {
	return validation.StructPartial(p, "Title", "Content")
}

// DeletePostPayload is bound from DELETE /post/:id.
type DeletePostPayload struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (p *DeletePostPayload) Validate() error {
	return validation.Struct(p)
}
