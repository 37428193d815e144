package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mvcarvalho/socialnet/model"
	Logger "github.com/mvcarvalho/socialnet/utils/log"
)

const defaultTimeout = 30 * time.Second

// Config holds client configuration.
type Config struct {
	// BaseURL is the root of the backend API, e.g. http://localhost:9090/api
	BaseURL string
	// HTTPClient is used to execute requests. When nil, a default client with
	// a conservative timeout is used.
	HTTPClient *http.Client
}

/*

Client is a typed client for the SocialNet REST backend. Besides the
stateless request/response operations it owns exactly one piece of session
state: the currently authenticated user, which CreatePost reads to stamp
outgoing posts with author identity. The session lives on the Client instead
of a package-level variable so that tests and multiple backends don't step on
each other.

*/

type Client struct {
	baseURL     string
	httpClient  *http.Client
	currentUser *model.User
}

// New creates a SocialNet API client.
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api: BaseURL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}, nil
}

// CurrentUser returns the user of the current session, nil when logged out.
func (c *Client) CurrentUser() *model.User {
	return c.currentUser
}

// SetCurrentUser replaces the current session. Pass nil to log out.
func (c *Client) SetCurrentUser(user *model.User) {
	c.currentUser = user
}

// authResponse is the {success, message, user} envelope shared by the two
// auth endpoints.
type authResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    *model.User `json:"user"`
}

// statusResponse is the bare {success, message} envelope of mutation
// endpoints.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Login exchanges credentials for a session. On success the returned user
// becomes the client's current session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, error) {
	res, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var payload authResponse
	json.NewDecoder(res.Body).Decode(&payload)
	if res.StatusCode >= 300 || !payload.Success || payload.User == nil {
		return nil, &AuthError{Message: messageOr(payload.Message, "login failed")}
	}

	c.currentUser = payload.User
	return payload.User, nil
}

// Register creates a new account. The created user is returned but NOT
// logged in; the caller still has to go through Login.
//
// The backend expects the field to be called passwordHash but it actually
// receives the plaintext password, hashing happens (or not) server side.
func (c *Client) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	res, err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"username":     username,
		"email":        email,
		"passwordHash": password,
	})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	var payload authResponse
	json.NewDecoder(res.Body).Decode(&payload)
	if res.StatusCode >= 300 || !payload.Success || payload.User == nil {
		return nil, &AuthError{Message: messageOr(payload.Message, "registration failed")}
	}

	return payload.User, nil
}

// ListPosts fetches the whole feed in backend order. Payloads are returned
// raw, normalization into model.Post is the caller's job (see
// model.DecodePosts).
func (c *Client) ListPosts(ctx context.Context) ([]json.RawMessage, error) {
	res, err := c.do(ctx, http.MethodGet, "/posts", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		c.logNon2xx("list posts", res)
		return nil, &NetworkError{Operation: "list posts", StatusCode: res.StatusCode}
	}

	var raws []json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raws); err != nil {
		return nil, errors.Wrap(err, "decode posts response")
	}
	return raws, nil
}

type createPostRequest struct {
	Content    string  `json:"content"`
	Image      *string `json:"image"`
	AuthorID   int     `json:"authorId"`
	AuthorName string  `json:"authorName"`
}

type createPostResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Post    *model.Post `json:"post"`
}

// CreatePost publishes a new post stamped with the current session's author
// identity. Without a session it fails immediately, no request is issued.
func (c *Client) CreatePost(ctx context.Context, content, image string) (*model.Post, error) {
	user := c.currentUser
	if user == nil {
		return nil, &NotAuthenticatedError{Operation: "create post"}
	}

	var img *string
	if image != "" {
		img = &image
	}
	res, err := c.do(ctx, http.MethodPost, "/posts", createPostRequest{
		Content:    content,
		Image:      img,
		AuthorID:   user.ID,
		AuthorName: user.Name,
	})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		c.logNon2xx("create post", res)
		return nil, &NetworkError{Operation: "create post", StatusCode: res.StatusCode}
	}

	var payload createPostResponse
	json.NewDecoder(res.Body).Decode(&payload)
	if !payload.Success || payload.Post == nil {
		return nil, &APIError{Operation: "create post", Message: messageOr(payload.Message, "backend rejected post")}
	}
	return payload.Post, nil
}

// LikePost registers a like of the current viewer on the given post.
func (c *Client) LikePost(ctx context.Context, id int) error {
	return c.mutatePost(ctx, http.MethodPost, fmt.Sprintf("/posts/%d/like", id), "like post")
}

// UnlikePost is a stub: the backend has no unlike endpoint yet, so this
// succeeds without issuing any request and the like survives the next feed
// reload.
// TODO(mvcarvalho): call POST /posts/{id}/unlike once the backend ships it.
func (c *Client) UnlikePost(ctx context.Context, id int) error {
	return nil
}

// DeletePost removes the given post.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	return c.mutatePost(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), "delete post")
}

func (c *Client) mutatePost(ctx context.Context, method, path, operation string) error {
	res, err := c.do(ctx, method, path, nil)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		c.logNon2xx(operation, res)
		return &NetworkError{Operation: operation, StatusCode: res.StatusCode}
	}

	var payload statusResponse
	json.NewDecoder(res.Body).Decode(&payload)
	if !payload.Success {
		return &APIError{Operation: operation, Message: messageOr(payload.Message, "backend reported failure")}
	}
	return nil
}

// GetUserByID looks a user up. The backend flattens the user fields into the
// response envelope itself instead of nesting them under a key.
func (c *Client) GetUserByID(ctx context.Context, id int) (*model.User, error) {
	res, err := c.do(ctx, http.MethodGet, fmt.Sprintf("/users/%d", id), nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		c.logNon2xx("get user", res)
		return nil, &NetworkError{Operation: "get user", StatusCode: res.StatusCode}
	}

	var payload struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		model.User
	}
	json.NewDecoder(res.Body).Decode(&payload)
	if !payload.Success {
		return nil, &NotFoundError{UserID: id}
	}

	user := payload.User
	return &user, nil
}

// do executes one JSON exchange against the backend. Every request carries a
// fresh X-Request-Id so client and backend logs can be correlated.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, "encode request body")
		}
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s %s request", method, path)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.New().String())

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", method, path)
	}
	return res, nil
}

// Log the response body when the status code is not 2xx, the body is usually
// the only hint of what the backend disliked.
func (c *Client) logNon2xx(operation string, res *http.Response) {
	body, err := ioutil.ReadAll(res.Body)
	if err == nil {
		Logger.Log.Errorf("%s: non-2xx http code %d, body: %s", operation, res.StatusCode, string(body))
	}
}

func messageOr(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}
