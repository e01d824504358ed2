package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := MissingInput("no source")
	wrapped := Wrap(base, "load failed")

	assert.Equal(t, CodeMissingInput, GetCode(wrapped))
	assert.True(t, HasCode(wrapped, CodeMissingInput))
	assert.Equal(t, "load failed: no source", wrapped.Error())
}

func TestWrapPlainErrorIsInternal(t *testing.T) {
	wrapped := Wrapf(fmt.Errorf("disk"), "reading %s", "a.csv")

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "reading a.csv: disk", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestGetCodeThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", UnsupportedFormat("x.pdf", fmt.Errorf("zip: not a valid zip file")))

	assert.Equal(t, CodeUnsupportedFormat, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(fmt.Errorf("plain")))
}

func TestMissingColumnsListsAll(t *testing.T) {
	err := MissingColumns([]string{"Entry Count", "Workshop Date"})

	assert.Equal(t, CodeMissingColumns, err.Code)
	assert.Contains(t, err.Error(), `"Entry Count"`)
	assert.Contains(t, err.Error(), `"Workshop Date"`)
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeValidationError, fmt.Errorf("bad"))
	assert.Equal(t, CodeValidationError, GetCode(err))
	assert.Nil(t, WithCode(CodeValidationError, nil))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(MissingColumns([]string{"a"})))
	assert.Equal(t, http.StatusUnsupportedMediaType, HTTPStatus(Wrap(UnsupportedFormat("a.xlsx", nil), "read")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(MissingInput("none")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("upload x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("boom")))
}
