package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/post-api/internal/errs"
)

type articlePayload struct {
	ID      int64  `param:"id" json:"-" validate:"required,min=1"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (p *articlePayload) Validate() error {
	return Struct(p)
}

// lateArticlePayload binds its body only when asked to.
type lateArticlePayload struct {
	ID      int64  `param:"id" json:"-" validate:"required,min=1"`
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (p *lateArticlePayload) Validate() error {
	return StructPartial(p, "ID")
}

func (p *lateArticlePayload) BindBody(c echo.Context) error {
	if err := BindBody(c, p); err != nil {
		return err
	}
	return Check(StructPartial(p, "Title", "Content"))
}

func newContext(id, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/post/"+id, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/post/:id")
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

func requireHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.True(t, errors.As(err, &httpErr), "expected *errs.HTTPError, got %T", err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	return httpErr
}

func TestBindAndValidate(t *testing.T) {
	payload := &articlePayload{}

	err := BindAndValidate(newContext("7", `{"title":"a","content":"b"}`), payload)
	require.NoError(t, err)

	assert.Equal(t, int64(7), payload.ID)
	assert.Equal(t, "a", payload.Title)
	assert.Equal(t, "b", payload.Content)
}

func TestBindAndValidateMissingField(t *testing.T) {
	err := BindAndValidate(newContext("7", `{"title":"a"}`), &articlePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, "Validation failed", httpErr.Message)
	assert.Equal(t, []errs.FieldError{{Field: "content", Error: "is required"}}, httpErr.Errors)
}

func TestBindAndValidateEmptyString(t *testing.T) {
	err := BindAndValidate(newContext("7", `{"title":"","content":"b"}`), &articlePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "title", Error: "is required"}}, httpErr.Errors)
}

func TestBindAndValidateWrongType(t *testing.T) {
	err := BindAndValidate(newContext("7", `{"title":5,"content":"b"}`), &articlePayload{})

	httpErr := requireHTTPError(t, err)
	assert.Empty(t, httpErr.Errors)
	assert.Contains(t, httpErr.Message, "Unmarshal type error")
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	err := BindAndValidate(newContext("7", `{"title":`), &articlePayload{})

	requireHTTPError(t, err)
}

func TestBindAndValidateInvalidID(t *testing.T) {
	err := BindAndValidate(newContext("abc", `{"title":"a","content":"b"}`), &articlePayload{})
	requireHTTPError(t, err)

	err = BindAndValidate(newContext("0", `{"title":"a","content":"b"}`), &articlePayload{})
	httpErr := requireHTTPError(t, err)
	assert.Equal(t, []errs.FieldError{{Field: "id", Error: "is required"}}, httpErr.Errors)
}

func TestBindAndValidateDeferredBodyLeavesBodyUnread(t *testing.T) {
	c := newContext("9", `{"title":1,"content":"x"}`)
	payload := &lateArticlePayload{}

	require.NoError(t, BindAndValidate(c, payload))
	assert.Equal(t, int64(9), payload.ID)
	assert.Empty(t, payload.Title)
	assert.Empty(t, payload.Content)

	httpErr := requireHTTPError(t, payload.BindBody(c))
	assert.Contains(t, httpErr.Message, "Unmarshal type error")
}

func TestBindAndValidateDeferredBodyInvalidID(t *testing.T) {
	err := BindAndValidate(newContext("abc", `{"title":1}`), &lateArticlePayload{})
	requireHTTPError(t, err)
}

func TestBindBody(t *testing.T) {
	c := newContext("9", `{"title":"a","content":"b"}`)
	payload := &lateArticlePayload{}

	require.NoError(t, BindAndValidate(c, payload))
	require.NoError(t, payload.BindBody(c))
	assert.Equal(t, "a", payload.Title)
	assert.Equal(t, "b", payload.Content)

	httpErr := requireHTTPError(t, (&lateArticlePayload{}).BindBody(newContext("9", `{"title":"a"}`)))
	assert.Equal(t, []errs.FieldError{{Field: "content", Error: "is required"}}, httpErr.Errors)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(nil))

	payload := &articlePayload{ID: 3}
	httpErr := requireHTTPError(t, Check(StructPartial(payload, "Title", "Content")))
	assert.Len(t, httpErr.Errors, 2)

	assert.NoError(t, StructPartial(payload, "ID"))
}
