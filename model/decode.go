package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"

	Logger "github.com/mvcarvalho/socialnet/utils/log"
)

// The backend has gone through several schema iterations and still serves a
// mix of field names for the same concept. Aliases are resolved in order, the
// first present field wins; legacy names come first because the backend keeps
// them authoritative while migrating.
var (
	postIDAliases     = []string{"postId", "id"}
	contentAliases    = []string{"description", "content"}
	authorNameAliases = []string{"postOwner", "authorName"}
)

const (
	defaultAuthorID   = 1
	defaultAuthorName = "Unknown"
	avatarURLFormat   = "https://i.pravatar.cc/150?img=%d"
)

// DecodePost maps one raw backend payload to the canonical Post shape. It is
// total over JSON objects: any missing or mistyped field falls back to its
// default, so a decoded Post never carries an undefined required field. The
// only error case is a payload that is not a JSON object at all.
func DecodePost(raw []byte) (Post, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return Post{}, fmt.Errorf("post payload is not a JSON object: %w", err)
	}

	authorID := intField(fields, "authorId", defaultAuthorID)
	avatar := stringField(fields, "authorAvatar", "")
	if avatar == "" {
		avatar = fmt.Sprintf(avatarURLFormat, authorID)
	}

	return Post{
		ID:           firstInt(fields, postIDAliases, 0),
		AuthorID:     authorID,
		AuthorName:   firstString(fields, authorNameAliases, defaultAuthorName),
		AuthorAvatar: avatar,
		Content:      firstString(fields, contentAliases, ""),
		Image:        stringField(fields, "image", ""),
		Likes:        clampNonNegative(intField(fields, "likes", 0)),
		Comments:     clampNonNegative(intField(fields, "comments", 0)),
		CreatedAt:    timeField(fields, "createdAt"),
		Liked:        boolField(fields, "liked"),
	}, nil
}

// DecodePosts normalizes a whole raw feed, keeping backend order. Entries
// that are not JSON objects are skipped with a log line instead of failing
// the load.
func DecodePosts(raws []json.RawMessage) []Post {
	posts := make([]Post, 0, len(raws))
	for _, raw := range raws {
		post, err := DecodePost(raw)
		if err != nil {
			Logger.Log.Errorf("skipping malformed post payload: %v", err)
			continue
		}
		posts = append(posts, post)
	}
	return posts
}

func firstString(fields map[string]interface{}, aliases []string, fallback string) string {
	for _, alias := range aliases {
		if v := stringField(fields, alias, ""); v != "" {
			return v
		}
	}
	return fallback
}

func firstInt(fields map[string]interface{}, aliases []string, fallback int) int {
	for _, alias := range aliases {
		if _, ok := fields[alias]; ok {
			return intField(fields, alias, fallback)
		}
	}
	return fallback
}

func stringField(fields map[string]interface{}, key, fallback string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return fallback
}

func intField(fields map[string]interface{}, key string, fallback int) int {
	// encoding/json decodes every number into float64
	if v, ok := fields[key].(float64); ok {
		return int(v)
	}
	return fallback
}

func boolField(fields map[string]interface{}, key string) bool {
	v, ok := fields[key].(bool)
	return ok && v
}

func timeField(fields map[string]interface{}, key string) time.Time {
	raw, ok := fields[key].(string)
	if !ok {
		return time.Now()
	}
	t, err := dateparse.ParseLocal(raw)
	if err != nil {
		return time.Now()
	}
	return t
}

func clampNonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
