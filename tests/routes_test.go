package tests

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootRoute(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/", nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody[map[string]string](t, resp)
	require.Equal(t, "CriticScore API", body["message"])
}

func TestUnknownRoute(t *testing.T) {
	resp := doRequest(t, http.MethodGet, "/nope", nil, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
