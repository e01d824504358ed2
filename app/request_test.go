package app

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edadash/internal/uploads"
)

func TestParseRequest(t *testing.T) {
	q, err := url.ParseQuery("sample=on&upload=%20abc%20&path=data.csv&x=a&y=b&color=c")
	require.NoError(t, err)

	req := ParseRequest(q)
	assert.True(t, req.Sample)
	assert.Equal(t, "abc", req.UploadID)
	assert.Equal(t, "data.csv", req.Path)
	assert.Equal(t, Selection{X: "a", Y: "b", Color: "c"}, req.Selection)

	assert.False(t, ParseRequest(url.Values{"sample": {"false"}}).Sample)
	assert.True(t, ParseRequest(url.Values{"sample": {"1"}}).Sample)
}

func TestRequestQueryRoundTrip(t *testing.T) {
	req := Request{Sample: true, Path: "x.csv", Selection: Selection{X: "Entry Count", Color: "OTO/Non OTO"}}
	q := req.Query()

	assert.Equal(t, "true", q.Get("sample"))
	assert.False(t, q.Has("upload"))
	assert.False(t, q.Has("y"))
	assert.Equal(t, req, ParseRequest(q))
}

func TestRequestSourceResolvesUpload(t *testing.T) {
	store := uploads.NewStore(time.Minute)
	file := store.Put("data.csv", []byte("a\n1\n"))

	src, warnings := Request{UploadID: file.ID}.Source(store)
	assert.Empty(t, warnings)
	require.NotNil(t, src.Upload)
	assert.Equal(t, "data.csv", src.Upload.Name)

	src, warnings = Request{UploadID: "gone"}.Source(store)
	assert.Nil(t, src.Upload)
	assert.Equal(t, []string{uploadExpiredWarning}, warnings)
}
