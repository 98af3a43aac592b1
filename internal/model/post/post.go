package post

import (
	"github.com/deppfellow/post-api/internal/model"
)

// Post is a row of the posts table.
type Post struct {
	model.Base
	Title   string `json:"title" db:"title"`
	Content string `json:"content" db:"content"`
}
