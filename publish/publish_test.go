package publish

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/google/go-github/v32/github"
	"github.com/stretchr/testify/require"
)

const baseURLPath = "/api-v3"

// setup builds a Client against a mock GitHub API server. The returned
// mux already answers the authenticated-user lookup as "alice"; tests
// register the endpoints their scenario needs.
func setup(t *testing.T) (*Client, *http.ServeMux, func()) {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/user", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"login": "alice"}`)
	})

	apiHandler := http.NewServeMux()
	apiHandler.Handle(baseURLPath+"/", http.StripPrefix(baseURLPath, mux))
	server := httptest.NewServer(apiHandler)

	gh := github.NewClient(nil)
	u, _ := url.Parse(server.URL + baseURLPath + "/")
	gh.BaseURL = u
	gh.UploadURL = u

	c, err := NewWithClient(context.Background(), gh, Target{
		Owner:      "octofacehub",
		Repo:       "hub",
		BaseBranch: "main",
	})
	require.NoError(t, err)
	c.forkWait = time.Millisecond

	return c, mux, server.Close
}

// contentsPut is the decoded body of a contents-API write.
type contentsPut struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha"`
}

func decodePut(t *testing.T, r *http.Request) (contentsPut, []byte) {
	t.Helper()
	var body contentsPut
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	raw, err := base64.StdEncoding.DecodeString(body.Content)
	require.NoError(t, err)
	return body, raw
}

// serveFile writes a contents-API file response with raw (unencoded)
// content and the given blob SHA.
func serveFile(w http.ResponseWriter, content, sha string) {
	resp := map[string]interface{}{
		"type":    "file",
		"content": content,
		"sha":     sha,
	}
	_ = json.NewEncoder(w).Encode(resp)
}
