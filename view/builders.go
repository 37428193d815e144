package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/mvcarvalho/socialnet/model"
)

// Builders map domain entities to render-tree fragments. They are pure: no
// network access, no mutation of application state, identical input yields
// an identical fragment.

// LoginForm builds the logged-out login sub-view.
func LoginForm() *Node {
	return El("div", attrs("class", "login-container"),
		El("div", attrs("class", "login-box"),
			El("div", attrs("class", "login-header"),
				El("h1", nil, Text("SocialNet")),
				El("p", nil, Text("Connect with your friends")),
			),
			El("form", attrs("id", "loginForm"),
				formGroup("email", "Email", "your@email.com"),
				formGroup("password", "Password", "your password"),
				El("button", attrs("class", "btn btn-primary", "type", "submit"), Text("Enter")),
				El("p", attrs("class", "login-footer"),
					Text("Don't have an account?"),
					El("button", attrs("class", "link-btn", "id", "toggleRegister"), Text("Create account")),
				),
			),
		),
	)
}

// RegisterForm builds the logged-out register sub-view.
func RegisterForm() *Node {
	return El("div", attrs("class", "login-container"),
		El("div", attrs("class", "login-box"),
			El("div", attrs("class", "login-header"),
				El("h1", nil, Text("SocialNet")),
				El("p", nil, Text("Create your account")),
			),
			El("form", attrs("id", "registerForm"),
				formGroup("username", "Username", "Your name"),
				formGroup("regEmail", "Email", "your@email.com"),
				formGroup("regPassword", "Password", "Create a password"),
				formGroup("confirmPassword", "Confirm your password", "Confirm your password"),
				El("button", attrs("class", "btn btn-primary", "type", "submit"), Text("Create account")),
				El("p", attrs("class", "login-footer"),
					Text("Already have an account?"),
					El("button", attrs("class", "link-btn", "id", "toggleLogin"), Text("Log in")),
				),
			),
		),
	)
}

// Nav builds the top navigation bar with the session user's identity.
func Nav(user *model.User) *Node {
	return El("nav", attrs("class", "navbar"),
		El("div", attrs("class", "nav-container"),
			El("div", attrs("class", "nav-logo"), El("h2", nil, Text("SocialNet"))),
			El("div", attrs("class", "nav-menu"),
				navItem("feed", "Home", true),
				navItem("explore", "Explore", false),
				navItem("notifications", "Notifications", false),
				navItem("messages", "Messages", false),
			),
			El("div", attrs("class", "nav-user"),
				El("button", attrs("class", "nav-item", "data-page", "profile"),
					El("img", attrs("class", "avatar-small", "src", user.Avatar, "alt", "Profile")),
					El("span", nil, Text(user.Name)),
				),
				El("button", attrs("class", "btn btn-secondary", "id", "logoutBtn"), Text("Log out")),
			),
		),
	)
}

// MainLayout builds the three-column skeleton of the main view.
func MainLayout() *Node {
	return El("main", attrs("class", "main-content"),
		El("div", attrs("class", "container"),
			El("div", attrs("class", "sidebar-left")),
			El("div", attrs("class", "feed-container")),
			El("div", attrs("class", "sidebar-right")),
		),
	)
}

// MainPage assembles the whole main-feed view: nav, composer, feed and
// sidebar.
func MainPage(user *model.User, composerDraft string, posts []model.Post) *Node {
	layout := MainLayout()
	container := layout.Children[0]
	feedContainer := container.Children[1]
	sidebarRight := container.Children[2]

	feedContainer.Children = []*Node{
		PostComposer(user, composerDraft),
		Feed(posts),
	}
	sidebarRight.Children = []*Node{Sidebar(user)}

	return El("div", attrs("class", "app-container"), Nav(user), layout)
}

// PostComposer builds the new-post box. The publish button stays disabled
// until the draft has non-whitespace content.
func PostComposer(user *model.User, draft string) *Node {
	composeBtn := attrs("class", "btn btn-primary", "id", "postBtn")
	if strings.TrimSpace(draft) == "" {
		composeBtn["disabled"] = "disabled"
	}

	textarea := El("textarea", attrs("class", "composer-textarea", "id", "postText", "placeholder", "What's on your mind?"))
	textarea.Text = draft

	return El("div", attrs("class", "post-composer"),
		El("div", attrs("class", "composer-header"),
			El("img", attrs("class", "avatar", "src", user.Avatar, "alt", user.Name)),
			El("div", attrs("class", "composer-input"), textarea),
		),
		El("div", attrs("class", "composer-actions"),
			El("button", composeBtn, Text("Publish")),
		),
	)
}

// Feed builds the post list in backend order. An empty feed renders the
// empty-state fragment instead of a bare container.
func Feed(posts []model.Post) *Node {
	feed := El("div", attrs("class", "feed", "id", "feed"))
	if len(posts) == 0 {
		feed.Children = []*Node{EmptyState()}
		return feed
	}
	for _, post := range posts {
		feed.Children = append(feed.Children, PostCard(post))
	}
	return feed
}

// PostCard builds one feed entry.
func PostCard(post model.Post) *Node {
	content := post.Content
	if content == "" {
		content = "This post has no content"
	}

	likeClass := "post-action"
	likeIcon := "♡"
	if post.Liked {
		likeClass = "post-action liked"
		likeIcon = "♥"
	}

	card := El("div", attrs("class", "post-card"),
		El("div", attrs("class", "post-header"),
			El("div", attrs("class", "post-author"),
				El("img", attrs("class", "avatar", "src", post.AuthorAvatar, "alt", post.AuthorName)),
				El("div", attrs("class", "author-info"),
					El("h4", nil, Text(post.AuthorName)),
					El("span", attrs("class", "post-time"), Text(formatTime(post.CreatedAt))),
				),
			),
		),
		El("div", attrs("class", "post-content"), El("p", nil, Text(content))),
	)

	if post.Image != "" {
		card.Children[1].Children = append(card.Children[1].Children,
			El("img", attrs("class", "post-image", "src", post.Image, "alt", "Post")))
	}

	card.Children = append(card.Children,
		El("div", attrs("class", "post-stats"),
			El("span", nil, Textf("%d likes", post.Likes)),
			El("span", nil, Textf("%d comments", post.Comments)),
		),
		El("div", attrs("class", "post-actions"),
			El("button", attrs("class", likeClass, "data-action", "like", "data-post-id", fmt.Sprintf("%d", post.ID)),
				El("span", attrs("class", "icon"), Text(likeIcon)),
				El("span", nil, Text("Like")),
			),
			El("button", attrs("class", "post-action", "data-action", "comment", "data-post-id", fmt.Sprintf("%d", post.ID)),
				El("span", nil, Text("Comment")),
			),
		),
	)
	return card
}

// EmptyState is shown instead of posts when the feed is empty.
func EmptyState() *Node {
	return El("div", attrs("class", "empty-state"),
		El("div", attrs("class", "empty-state-content"),
			El("h3", nil, Text("No posts yet")),
			El("p", nil, Text("Be the first to publish something!")),
		),
	)
}

// Sidebar builds the profile preview card next to the feed.
func Sidebar(user *model.User) *Node {
	bio := user.Bio
	if bio == "" {
		bio = "No bio"
	}
	return El("div", attrs("class", "sidebar"),
		El("div", attrs("class", "sidebar-card"),
			El("div", attrs("class", "profile-preview"),
				El("img", attrs("class", "avatar-large", "src", user.Avatar, "alt", user.Name)),
				El("h3", nil, Text(user.Name)),
				El("p", attrs("class", "bio"), Text(bio)),
				statBlock(user),
				El("button", attrs("class", "btn btn-primary w-100"), Text("View profile")),
			),
		),
	)
}

// ProfilePage builds the session user's own profile view.
func ProfilePage(user *model.User) *Node {
	bio := user.Bio
	if bio == "" {
		bio = "Add a bio to your profile"
	}
	return El("div", attrs("class", "profile-page", "id", "profilePage"),
		El("div", attrs("class", "profile-container"),
			El("div", attrs("class", "profile-header"),
				El("div", attrs("class", "profile-cover")),
				El("div", attrs("class", "profile-info"),
					El("img", attrs("class", "profile-avatar", "src", user.Avatar, "alt", user.Name)),
					El("div", attrs("class", "profile-details"),
						El("h1", nil, Text(user.Name)),
						El("p", attrs("class", "profile-email"), Text("@"+user.Email)),
						El("p", attrs("class", "profile-bio"), Text(bio)),
						statBlock(user),
						El("button", attrs("class", "btn btn-primary", "id", "editProfileBtn"), Text("Edit profile")),
					),
				),
			),
		),
	)
}

// EditProfileForm builds the modal overlay for editing name, bio and avatar.
func EditProfileForm(user *model.User) *Node {
	nameInput := El("input", attrs("id", "editName", "type", "text", "value", user.Name))
	bioInput := El("textarea", attrs("id", "editBio", "placeholder", "Tell something about yourself"))
	bioInput.Text = user.Bio
	avatarInput := El("input", attrs("id", "editAvatar", "type", "url", "value", user.Avatar))

	return El("div", attrs("class", "modal-overlay", "id", "editProfileModal"),
		El("div", attrs("class", "modal-content"),
			El("div", attrs("class", "modal-header"),
				El("h2", nil, Text("Edit profile")),
				El("button", attrs("class", "close-btn", "id", "closeEditModal"), Text("x")),
			),
			El("form", attrs("id", "editProfileForm"),
				El("div", attrs("class", "form-group"), El("label", nil, Text("Name")), nameInput),
				El("div", attrs("class", "form-group"), El("label", nil, Text("Bio")), bioInput),
				El("div", attrs("class", "form-group"), El("label", nil, Text("Avatar URL")), avatarInput),
				El("div", attrs("class", "modal-actions"),
					El("button", attrs("class", "btn btn-secondary", "id", "cancelEditBtn"), Text("Cancel")),
					El("button", attrs("class", "btn btn-primary", "type", "submit"), Text("Save changes")),
				),
			),
		),
	)
}

// StaticPage is the placeholder for sections that are not built yet.
func StaticPage(name string) *Node {
	return El("div", attrs("class", "coming-soon"),
		El("p", nil, Textf("%s coming soon...", strings.Title(name))),
	)
}

// Notice builds a transient user-facing message. kind is "success" or
// "error".
func Notice(kind, message string) *Node {
	return El("div", attrs("class", "toast "+kind), Text(message))
}

func formGroup(id, label, placeholder string) *Node {
	return El("div", attrs("class", "form-group"),
		El("label", attrs("for", id), Text(label)),
		El("input", attrs("id", id, "placeholder", placeholder)),
	)
}

func navItem(page, label string, active bool) *Node {
	class := "nav-item"
	if active {
		class = "nav-item active"
	}
	return El("button", attrs("class", class, "data-page", page),
		El("span", nil, Text(label)),
	)
}

func statBlock(user *model.User) *Node {
	return El("div", attrs("class", "stats"),
		El("div", attrs("class", "stat"),
			El("strong", nil, Textf("%d", user.Followers)),
			El("span", nil, Text("Followers")),
		),
		El("div", attrs("class", "stat"),
			El("strong", nil, Textf("%d", user.Following)),
			El("span", nil, Text("Following")),
		),
	)
}

func formatTime(t time.Time) string {
	diff := time.Since(t)
	switch {
	case diff < time.Hour:
		return fmt.Sprintf("%dm", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd", int(diff.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// attrs builds an attribute map from key/value pairs.
func attrs(kv ...string) map[string]string {
	m := make(map[string]string, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		m[kv[i]] = kv[i+1]
	}
	return m
}
