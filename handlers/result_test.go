package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/markop/tubepulse.api/sources"
)

func TestUpstream_PassesJSONBodyThroughVerbatim(t *testing.T) {
	body := `{"error":{"code":403,"message":"quota exceeded"}}`

	res := Upstream(http.StatusForbidden, body)

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, json.RawMessage(body), res.Body)
}

func TestUpstream_WrapsNonJSONBody(t *testing.T) {
	res := Upstream(http.StatusBadGateway, "<html>upstream down</html>")

	assert.Equal(t, http.StatusBadGateway, res.Code)
	assert.Equal(t, ErrorResponse{"<html>upstream down</html>"}, res.Body)
}

func TestSourceError_TranslatesUpstreamAndNotFound(t *testing.T) {
	upstream := &sources.UpstreamError{StatusCode: http.StatusForbidden, Body: `{"error":"quota"}`}
	res := sourceError(upstream, "Video not found.", "fetch: ")
	assert.Equal(t, http.StatusForbidden, res.Code)

	res = sourceError(sources.ErrNotFound, "Video not found.", "fetch: ")
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, ErrorResponse{"Video not found."}, res.Body)

	res = sourceError(errors.New("boom"), "Video not found.", "fetch: ")
	assert.Equal(t, http.StatusInternalServerError, res.Code)
}

func TestParseCount(t *testing.T) {
	assert.Equal(t, int64(12345), parseCount("12345"))
	assert.Equal(t, int64(0), parseCount(""))
	assert.Equal(t, int64(0), parseCount("not-a-number"))
}
