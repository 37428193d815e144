package model

import "time"

/*

Post is one entry of the feed, already normalized to the canonical shape
(see DecodePost for how loose backend payloads are mapped into it)

ID: primary identifier assigned by the backend
AuthorID: id of the user who published the post
AuthorName: author display name, denormalized into the post by the backend
AuthorAvatar: author avatar URL, falls back to an id-derived placeholder
Content: post body in plain text, possibly empty
Image: optional attached image URL
Likes: like counter, never negative
Comments: comment counter, never negative
CreatedAt: publication time
Liked: whether the current viewer already liked this post

*/

type Post struct {
	ID           int       `json:"id"`
	AuthorID     int       `json:"authorId"`
	AuthorName   string    `json:"authorName"`
	AuthorAvatar string    `json:"authorAvatar"`
	Content      string    `json:"content"`
	Image        string    `json:"image,omitempty"`
	Likes        int       `json:"likes"`
	Comments     int       `json:"comments"`
	CreatedAt    time.Time `json:"createdAt"`
	Liked        bool      `json:"liked"`
}
