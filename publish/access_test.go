package publish

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAccess(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		want    AccessLevel
		wantErr bool
	}{
		{
			name:   "push permission",
			status: http.StatusOK,
			body:   `{"permissions": {"push": true, "admin": false}}`,
			want:   AccessPush,
		},
		{
			name:   "admin only",
			status: http.StatusOK,
			body:   `{"permissions": {"push": false, "admin": true}}`,
			want:   AccessPush,
		},
		{
			name:   "no permission",
			status: http.StatusOK,
			body:   `{"permissions": {"push": false, "admin": false}}`,
			want:   AccessReadOnly,
		},
		{
			name:    "api error fails closed",
			status:  http.StatusInternalServerError,
			body:    `{"message": "boom"}`,
			want:    AccessUnknown,
			wantErr: true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			client, mux, teardown := setup(t)
			defer teardown()
			mux.HandleFunc("/repos/octofacehub/hub", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(c.status)
				fmt.Fprint(w, c.body)
			})

			level, err := client.ResolveAccess()
			assert.Equal(t, c.want, level)
			if c.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestVerifyAccess(t *testing.T) {
	client, mux, teardown := setup(t)
	defer teardown()
	mux.HandleFunc("/repos/octofacehub/hub", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"full_name": "octofacehub/hub"}`)
	})

	assert.NoError(t, client.VerifyAccess())
	assert.Equal(t, "alice", client.Login())
}

func TestVerifyAccessRepoUnreachable(t *testing.T) {
	client, mux, teardown := setup(t)
	defer teardown()
	mux.HandleFunc("/repos/octofacehub/hub", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	assert.Error(t, client.VerifyAccess())
}
