package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvcarvalho/socialnet/model"
)

// requestLog records every request the fake backend receives so tests can
// assert on call counts and payloads.
type requestLog struct {
	methods []string
	paths   []string
	bodies  [][]byte
}

func (rl *requestLog) wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		rl.methods = append(rl.methods, r.Method)
		rl.paths = append(rl.paths, r.URL.Path)
		rl.bodies = append(rl.bodies, body)
		next.ServeHTTP(w, r)
	})
}

func (rl *requestLog) count() int { return len(rl.paths) }

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *requestLog) {
	rl := &requestLog{}
	srv := httptest.NewServer(rl.wrap(handler))
	t.Cleanup(srv.Close)

	client, err := New(Config{BaseURL: srv.URL, HTTPClient: srv.Client()})
	require.NoError(t, err)
	return client, rl
}

func respondJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestNewTrimsTrailingSlash(t *testing.T) {
	client, err := New(Config{BaseURL: "http://localhost:9090/api/"})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:9090/api", client.baseURL)
}

func TestLoginSuccessSetsSession(t *testing.T) {
	client, rl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":true,"user":{"id":2,"name":"Bea","email":"bea@example.com","avatar":"https://i.pravatar.cc/150?img=2"}}`)
	})

	user, err := client.Login(context.Background(), "bea@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 2, user.ID)
	assert.Equal(t, "Bea", user.Name)
	assert.Equal(t, user, client.CurrentUser())

	require.Equal(t, 1, rl.count())
	assert.Equal(t, "/auth/login", rl.paths[0])

	var body map[string]string
	require.NoError(t, json.Unmarshal(rl.bodies[0], &body))
	assert.Equal(t, "bea@example.com", body["email"])
	assert.Equal(t, "secret", body["password"])
}

func TestLoginFailureCarriesBackendMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":false,"message":"invalid password"}`)
	})

	_, err := client.Login(context.Background(), "bea@example.com", "wrong")
	require.Error(t, err)

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "invalid password", authErr.Message)
	assert.Nil(t, client.CurrentUser())
}

func TestLoginNonOKStatusIsAuthFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusInternalServerError, `{}`)
	})

	_, err := client.Login(context.Background(), "bea@example.com", "secret")
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, "login failed", authErr.Message)
	assert.Nil(t, client.CurrentUser())
}

func TestLoginMissingUserPayloadIsAuthFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":true}`)
	})

	_, err := client.Login(context.Background(), "bea@example.com", "secret")
	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Nil(t, client.CurrentUser())
}

func TestRegisterSendsPlaintextUnderHashField(t *testing.T) {
	client, rl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":true,"user":{"id":9,"name":"Nilo"}}`)
	})

	user, err := client.Register(context.Background(), "Nilo", "nilo@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, 9, user.ID)
	// registration never authenticates
	assert.Nil(t, client.CurrentUser())

	require.Equal(t, 1, rl.count())
	assert.Equal(t, "/auth/register", rl.paths[0])

	var body map[string]string
	require.NoError(t, json.Unmarshal(rl.bodies[0], &body))
	assert.Equal(t, "hunter2", body["passwordHash"])
	assert.Equal(t, "nilo@example.com", body["email"])
}

func TestListPostsReturnsRawPayloads(t *testing.T) {
	client, rl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `[{"postId":7,"description":"hi"},{"id":8,"content":"yo"}]`)
	})

	raws, err := client.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.JSONEq(t, `{"postId":7,"description":"hi"}`, string(raws[0]))

	assert.Equal(t, []string{"/posts"}, rl.paths)
	assert.Equal(t, http.MethodGet, rl.methods[0])
}

func TestListPostsNonOKIsNetworkError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusBadGateway, `backend down`)
	})

	_, err := client.ListPosts(context.Background())
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusBadGateway, netErr.StatusCode)
}

func TestCreatePostWithoutSessionIssuesNoRequest(t *testing.T) {
	client, rl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":true}`)
	})

	_, err := client.CreatePost(context.Background(), "hello", "")
	var notAuth *NotAuthenticatedError
	require.True(t, errors.As(err, &notAuth))
	assert.Equal(t, 0, rl.count())
}

func TestCreatePostStampsAuthorIdentity(t *testing.T) {
	client, rl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":true,"post":{"id":11,"content":"hello","authorId":2}}`)
	})
	client.SetCurrentUser(&model.User{ID: 2, Name: "Bea"})

	post, err := client.CreatePost(context.Background(), "hello", "")
	require.NoError(t, err)
	assert.Equal(t, 11, post.ID)

	var body createPostRequest
	require.NoError(t, json.Unmarshal(rl.bodies[0], &body))
	assert.Equal(t, 2, body.AuthorID)
	assert.Equal(t, "Bea", body.AuthorName)
	assert.Nil(t, body.Image)
}

func TestCreatePostBackendRejectionIsAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":false,"message":"content too long"}`)
	})
	client.SetCurrentUser(&model.User{ID: 2, Name: "Bea"})

	_, err := client.CreatePost(context.Background(), "hello", "")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "content too long", apiErr.Message)
}

func TestLikePostHitsLikeEndpoint(t *testing.T) {
	client, rl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":true}`)
	})

	require.NoError(t, client.LikePost(context.Background(), 7))
	assert.Equal(t, []string{"/posts/7/like"}, rl.paths)
	assert.Equal(t, http.MethodPost, rl.methods[0])
}

func TestLikePostBackendFailureIsAPIError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":false,"message":"already liked"}`)
	})

	err := client.LikePost(context.Background(), 7)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "already liked", apiErr.Message)
}

func TestUnlikePostIsSilentNoOp(t *testing.T) {
	client, rl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("unlike must not reach the backend")
	})

	require.NoError(t, client.UnlikePost(context.Background(), 42))
	assert.Equal(t, 0, rl.count())
}

func TestDeletePost(t *testing.T) {
	client, rl := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":true}`)
	})

	require.NoError(t, client.DeletePost(context.Background(), 7))
	assert.Equal(t, []string{"/posts/7"}, rl.paths)
	assert.Equal(t, http.MethodDelete, rl.methods[0])
}

func TestGetUserByIDFlattenedPayload(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":true,"id":4,"name":"Davi","email":"davi@example.com","avatar":"https://i.pravatar.cc/150?img=4"}`)
	})

	user, err := client.GetUserByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 4, user.ID)
	assert.Equal(t, "Davi", user.Name)
}

func TestGetUserByIDMissIsNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, `{"success":false,"message":"no such user"}`)
	})

	_, err := client.GetUserByID(context.Background(), 99)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, 99, nf.UserID)
}

func TestRequestsCarryJSONHeadersAndRequestID(t *testing.T) {
	var contentType, requestID string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		requestID = r.Header.Get("X-Request-Id")
		respondJSON(w, http.StatusOK, `[]`)
	})

	_, err := client.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.NotEmpty(t, requestID)
}
