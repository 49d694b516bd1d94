package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joestump/linkly/internal/api"
	"github.com/joestump/linkly/internal/links"
	"github.com/joestump/linkly/internal/workspace"
)

// testEnv wires the API router onto a fresh registry.
type testEnv struct {
	Router     http.Handler
	Workspaces *workspace.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	reg := workspace.NewRegistry(workspace.Options{})
	return &testEnv{
		Router:     api.NewAPIRouter(api.Deps{Workspaces: reg, Logos: links.NewLogoResolver("")}),
		Workspaces: reg,
	}
}

func (env *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body == "" {
		buf = &bytes.Buffer{}
	} else {
		buf = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

// seedWorkspace creates a workspace holding the given names, each with URL
// https://<name>.example.
func seedWorkspace(t *testing.T, env *testEnv, names ...string) string {
	t.Helper()
	var req api.CreateWorkspaceRequest
	for _, n := range names {
		req.Links = append(req.Links, api.CreateLinkRequest{Name: n, URL: "https://" + n + ".example"})
	}
	b, err := json.Marshal(req)
	require.NoError(t, err)

	rec := env.do(t, http.MethodPost, "/workspaces", string(b))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp api.WorkspaceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Links, len(names))
	return resp.ID
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v), rec.Body.String())
	return v
}

func names(ls []api.LinkResponse) []string {
	out := make([]string, 0, len(ls))
	for _, l := range ls {
		out = append(out, l.Name)
	}
	return out
}

func TestWorkspaces_Create_Empty(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/workspaces", "")
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	resp := decode[api.WorkspaceResponse](t, rec)
	assert.NotEmpty(t, resp.ID)
	assert.Empty(t, resp.Links)
	assert.Equal(t, 1, env.Workspaces.Len())
}

func TestWorkspaces_Create_DuplicateSeedDiscardsWorkspace(t *testing.T) {
	env := newTestEnv(t)
	body := `{"links":[{"name":"A","url":"https://a.example"},{"name":"A","url":"https://b.example"}]}`
	rec := env.do(t, http.MethodPost, "/workspaces", body)
	require.Equal(t, http.StatusConflict, rec.Code)

	resp := decode[api.ErrorResponse](t, rec)
	assert.Equal(t, api.CodeDuplicate, resp.Code)
	assert.Equal(t, 0, env.Workspaces.Len())
}

func TestLinks_List_OK(t *testing.T) {
	env := newTestEnv(t)
	ws := seedWorkspace(t, env, "github", "docs")

	rec := env.do(t, http.MethodGet, "/workspaces/"+ws+"/links", "")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[api.LinkListResponse](t, rec)
	assert.Equal(t, []string{"github", "docs"}, names(resp.Links))
	assert.Equal(t, 1, resp.Links[1].Index)
	assert.Equal(t, links.DefaultLogoEndpoint+"docs.example", resp.Links[1].Logo.Primary)
	assert.Equal(t, links.DefaultLogo, resp.Links[1].Logo.Fallback)
	assert.Empty(t, resp.Notifications, "seeding is silent")
}

func TestLinks_UnknownWorkspace(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/workspaces/nope/links", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.CodeNotFound, decode[api.ErrorResponse](t, rec).Code)
}

func TestLinks_EvictedWorkspace(t *testing.T) {
	env := newTestEnv(t)
	ws := seedWorkspace(t, env, "A")
	require.True(t, env.Workspaces.Remove(ws))

	rec := env.do(t, http.MethodGet, "/workspaces/"+ws+"/links", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.CodeNotFound, decode[api.ErrorResponse](t, rec).Code)

	rec = env.do(t, http.MethodDelete, "/workspaces/"+ws+"/links/0", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.CodeNotFound, decode[api.ErrorResponse](t, rec).Code)
}

func TestLinks_Add(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		code     string
		kind     string
		wantList []string
	}{
		{
			name:     "appends",
			body:     `{"name":"  Docs ","url":"https://docs.example"}`,
			status:   http.StatusCreated,
			kind:     "success",
			wantList: []string{"A", "Docs"},
		},
		{
			name:     "blank name",
			body:     `{"name":"   ","url":"https://x.example"}`,
			status:   http.StatusBadRequest,
			code:     api.CodeEmptyField,
			kind:     "error",
			wantList: []string{"A"},
		},
		{
			name:     "duplicate",
			body:     `{"name":"A","url":"https://other.example"}`,
			status:   http.StatusConflict,
			code:     api.CodeDuplicate,
			kind:     "warning",
			wantList: []string{"A"},
		},
		{
			name:     "malformed body",
			body:     `{`,
			status:   http.StatusBadRequest,
			code:     api.CodeBadRequest,
			wantList: []string{"A"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ws := seedWorkspace(t, env, "A")

			rec := env.do(t, http.MethodPost, "/workspaces/"+ws+"/links", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			if tt.code == "" {
				resp := decode[api.LinkMutationResponse](t, rec)
				require.NotNil(t, resp.Link)
				assert.Equal(t, "Docs", resp.Link.Name)
				assert.Equal(t, 1, resp.Link.Index)
				require.Len(t, resp.Notifications, 1)
				assert.Equal(t, tt.kind, resp.Notifications[0].Kind)
				assert.Equal(t, workspace.DefaultDuration.Milliseconds(), resp.Notifications[0].DurationMS)
			} else {
				resp := decode[api.ErrorResponse](t, rec)
				assert.Equal(t, tt.code, resp.Code)
				if tt.kind != "" {
					require.Len(t, resp.Notifications, 1)
					assert.Equal(t, tt.kind, resp.Notifications[0].Kind)
				}
			}

			list := decode[api.LinkListResponse](t, env.do(t, http.MethodGet, "/workspaces/"+ws+"/links", ""))
			assert.Equal(t, tt.wantList, names(list.Links))
		})
	}
}

func TestLinks_Update(t *testing.T) {
	env := newTestEnv(t)
	ws := seedWorkspace(t, env, "A", "B")

	rec := env.do(t, http.MethodPut, "/workspaces/"+ws+"/links/1", `{"url":"https://new.example"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[api.LinkMutationResponse](t, rec)
	require.NotNil(t, resp.Link)
	assert.Equal(t, "B", resp.Link.Name)
	assert.Equal(t, "https://new.example", resp.Link.URL)
	assert.Equal(t, `Link "B" updated successfully!`, resp.Notifications[0].Message)

	rec = env.do(t, http.MethodPut, "/workspaces/"+ws+"/links/1", `{"url":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPut, "/workspaces/"+ws+"/links/7", `{"url":"https://x.example"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, api.CodeOutOfRange, decode[api.ErrorResponse](t, rec).Code)

	rec = env.do(t, http.MethodPut, "/workspaces/"+ws+"/links/-1", `{"url":"https://x.example"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLinks_Delete(t *testing.T) {
	env := newTestEnv(t)
	ws := seedWorkspace(t, env, "A", "B", "C")

	rec := env.do(t, http.MethodDelete, "/workspaces/"+ws+"/links/1", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[api.LinkMutationResponse](t, rec)
	require.NotNil(t, resp.Link)
	assert.Equal(t, "B", resp.Link.Name)
	assert.Equal(t, []string{"A", "C"}, names(resp.Links))

	rec = env.do(t, http.MethodDelete, "/workspaces/"+ws+"/links/2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLinks_Reorder(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		status   int
		wantList []string
		notified bool
	}{
		{"first to last", `{"from":0,"to":2}`, http.StatusOK, []string{"B", "C", "A"}, true},
		{"last to first", `{"from":2,"to":0}`, http.StatusOK, []string{"C", "A", "B"}, true},
		{"same index", `{"from":1,"to":1}`, http.StatusOK, []string{"A", "B", "C"}, false},
		{"out of range", `{"from":0,"to":3}`, http.StatusNotFound, []string{"A", "B", "C"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ws := seedWorkspace(t, env, "A", "B", "C")

			rec := env.do(t, http.MethodPost, "/workspaces/"+ws+"/links/reorder", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status == http.StatusOK {
				resp := decode[api.LinkListResponse](t, rec)
				assert.Equal(t, tt.wantList, names(resp.Links))
				assert.Equal(t, tt.notified, len(resp.Notifications) == 1)
			}

			list := decode[api.LinkListResponse](t, env.do(t, http.MethodGet, "/workspaces/"+ws+"/links", ""))
			assert.Equal(t, tt.wantList, names(list.Links))
		})
	}
}
