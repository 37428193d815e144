package app

import (
	"context"
	"io"
	"strings"

	"github.com/jinzhu/copier"

	"github.com/mvcarvalho/socialnet/api"
	"github.com/mvcarvalho/socialnet/model"
	"github.com/mvcarvalho/socialnet/store"
	"github.com/mvcarvalho/socialnet/utils"
	Logger "github.com/mvcarvalho/socialnet/utils/log"
	"github.com/mvcarvalho/socialnet/view"
)

// State identifies where the application currently is. There is exactly one
// active state; StateEditProfile is a modal overlaying StateMainFeed or
// StateProfile and returns to it on close.
type State int

const (
	StateLoggedOut State = iota
	StateMainFeed
	StateProfile
	StateEditProfile
	StateStatic
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged_out"
	case StateMainFeed:
		return "main_feed"
	case StateProfile:
		return "profile"
	case StateEditProfile:
		return "edit_profile"
	case StateStatic:
		return "static"
	default:
		return "unknown"
	}
}

var staticPages = []string{"explore", "notifications", "messages"}

/*

App is the application controller. It owns the Session User and the Feed,
drives view transitions and binds user interactions to API calls. All remote
failures are caught here: primary actions (login, register, publish) surface
a blocking notice, secondary actions (like, feed reload) are logged and the
user keeps looking at stale state. Every operation is fire-once, there is no
retry.

After a successful mutation the controller always re-fetches the whole feed,
so displayed state is backend-authoritative once an action completes.

*/

type App struct {
	client   *api.Client
	sessions store.SessionStore
	out      io.Writer

	state        State
	registerView bool
	user         *model.User
	posts        []model.Post
	composer     string
	editDraft    *model.User
	staticPage   string
	// state the edit-profile modal returns to on close
	modalReturn State
}

// New wires a controller to its collaborators. out receives every rendered
// view.
func New(client *api.Client, sessions store.SessionStore, out io.Writer) *App {
	return &App{
		client:   client,
		sessions: sessions,
		out:      out,
		state:    StateLoggedOut,
	}
}

// Accessors used by the shell and by tests.

func (a *App) State() State             { return a.state }
func (a *App) CurrentUser() *model.User { return a.user }
func (a *App) Posts() []model.Post      { return a.posts }
func (a *App) ComposerDraft() string    { return a.composer }
func (a *App) RegisterViewActive() bool { return a.registerView }
func (a *App) EditDraft() *model.User   { return a.editDraft }
func (a *App) StaticPage() string       { return a.staticPage }

// ComposerEnabled reports whether the publish action is currently allowed.
func (a *App) ComposerEnabled() bool {
	return strings.TrimSpace(a.composer) != ""
}

// Init resolves the startup state: a persisted session leads straight into
// the main feed, otherwise the login view is shown.
func (a *App) Init(ctx context.Context) {
	user, err := a.sessions.Load()
	if err != nil {
		Logger.Log.Errorf("restore session: %v", err)
	}
	if user == nil {
		a.state = StateLoggedOut
		a.registerView = false
		a.render(view.LoginForm())
		return
	}

	a.user = user
	a.client.SetCurrentUser(user)
	a.enterMainFeed(ctx)
}

// SubmitLogin exchanges credentials for a session. Success persists the
// session and enters the main feed; failure keeps the login view and
// surfaces the backend's message.
func (a *App) SubmitLogin(ctx context.Context, email, password string) {
	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		a.render(view.Notice("error", "Could not log in: "+err.Error()))
		a.render(view.LoginForm())
		return
	}

	a.user = user
	if err := a.sessions.Save(user); err != nil {
		Logger.Log.Errorf("persist session: %v", err)
	}
	a.enterMainFeed(ctx)
}

// ToggleRegister flips between the login and register sub-views of the
// logged-out state.
func (a *App) ToggleRegister() {
	if a.state != StateLoggedOut {
		return
	}
	a.registerView = !a.registerView
	if a.registerView {
		a.render(view.RegisterForm())
	} else {
		a.render(view.LoginForm())
	}
}

// SubmitRegister creates an account. Success returns to the login sub-view
// with a confirmation notice; the new user is NOT logged in automatically.
func (a *App) SubmitRegister(ctx context.Context, username, email, password, confirm string) {
	if password != confirm {
		a.render(view.Notice("error", "Passwords do not match"))
		a.render(view.RegisterForm())
		return
	}

	if _, err := a.client.Register(ctx, username, email, password); err != nil {
		a.render(view.Notice("error", "Could not create account: "+err.Error()))
		a.render(view.RegisterForm())
		return
	}

	a.registerView = false
	a.render(view.Notice("success", "Welcome to SocialNet! Your account was created successfully"))
	a.render(view.LoginForm())
}

// Navigate switches between the main sections. Profile renders the locally
// held session user without refetching, so a profile edited elsewhere shows
// stale until the next login.
func (a *App) Navigate(ctx context.Context, page string) {
	if a.user == nil {
		a.render(view.Notice("error", "Log in first"))
		return
	}

	switch {
	case page == "feed":
		a.enterMainFeed(ctx)
	case page == "profile":
		a.state = StateProfile
		a.render(view.ProfilePage(a.user))
	case utils.ContainsString(staticPages, page):
		a.state = StateStatic
		a.staticPage = page
		a.render(view.StaticPage(page))
	default:
		a.render(view.Notice("error", "Unknown page: "+page))
	}
}

// OpenEditProfile opens the edit modal over the feed or the profile view.
// The modal works on a draft copy so cancel can discard cleanly.
func (a *App) OpenEditProfile() {
	if a.user == nil || (a.state != StateProfile && a.state != StateMainFeed) {
		return
	}

	draft := &model.User{}
	if err := copier.Copy(draft, a.user); err != nil {
		Logger.Log.Errorf("copy profile draft: %v", err)
		return
	}
	a.editDraft = draft
	a.modalReturn = a.state
	a.state = StateEditProfile
	a.render(view.EditProfileForm(draft))
}

func (a *App) SetEditName(name string) { a.setDraftField(func(u *model.User) { u.Name = name }) }
func (a *App) SetEditBio(bio string)   { a.setDraftField(func(u *model.User) { u.Bio = bio }) }
func (a *App) SetEditAvatar(avatar string) {
	a.setDraftField(func(u *model.User) { u.Avatar = avatar })
}

func (a *App) setDraftField(mutate func(*model.User)) {
	if a.state != StateEditProfile || a.editDraft == nil {
		return
	}
	mutate(a.editDraft)
}

// SaveProfile commits the draft to the local session user and the persisted
// slot. The backend never learns about the edit: there is no profile update
// endpoint, so the server keeps serving the old name on posts.
// TODO(mvcarvalho): send the edit to PUT /users/{id} once the backend has it.
func (a *App) SaveProfile() {
	if a.state != StateEditProfile || a.editDraft == nil {
		return
	}

	a.user.Name = a.editDraft.Name
	a.user.Bio = a.editDraft.Bio
	a.user.Avatar = a.editDraft.Avatar

	if err := a.sessions.Save(a.user); err != nil {
		Logger.Log.Errorf("persist edited profile: %v", err)
	}
	a.client.SetCurrentUser(a.user)

	a.editDraft = nil
	a.render(view.Notice("success", "Profile updated"))
	a.closeModal()
}

// CancelEditProfile closes the modal discarding unsaved edits.
func (a *App) CancelEditProfile() {
	if a.state != StateEditProfile {
		return
	}
	a.editDraft = nil
	a.closeModal()
}

func (a *App) closeModal() {
	a.state = a.modalReturn
	if a.state == StateMainFeed {
		a.renderMain()
	} else {
		a.render(view.ProfilePage(a.user))
	}
}

// UpdateComposer replaces the new-post draft, re-rendering so the publish
// button's enabled state tracks the text.
func (a *App) UpdateComposer(text string) {
	a.composer = text
	if a.state == StateMainFeed {
		a.renderMain()
	}
}

// SubmitPost publishes the composer draft. Success clears the draft and
// reloads the whole feed; failure keeps the draft so the user can retry.
func (a *App) SubmitPost(ctx context.Context) {
	content := strings.TrimSpace(a.composer)
	if content == "" {
		return
	}

	if _, err := a.client.CreatePost(ctx, content, ""); err != nil {
		Logger.Log.Errorf("publish post: %v", err)
		a.render(view.Notice("error", "Could not publish post"))
		return
	}

	a.composer = ""
	a.loadPosts(ctx)
	a.renderMain()
}

// ToggleLike likes or unlikes the targeted post depending on its per-viewer
// flag, then reloads the feed either way. Failures are logged, never
// surfaced.
func (a *App) ToggleLike(ctx context.Context, postID int) {
	post := a.findPost(postID)
	if post == nil {
		return
	}

	var err error
	if post.Liked {
		err = a.client.UnlikePost(ctx, postID)
	} else {
		err = a.client.LikePost(ctx, postID)
	}
	if err != nil {
		Logger.Log.Errorf("toggle like on post %d: %v", postID, err)
	}

	a.loadPosts(ctx)
	a.renderMain()
}

// DeletePost removes a post and reloads the feed.
func (a *App) DeletePost(ctx context.Context, postID int) {
	if err := a.client.DeletePost(ctx, postID); err != nil {
		Logger.Log.Errorf("delete post %d: %v", postID, err)
		a.render(view.Notice("error", "Could not delete post"))
		return
	}
	a.loadPosts(ctx)
	a.renderMain()
}

// Logout drops the session and the feed, clears the persisted slot and
// returns to the login view.
func (a *App) Logout() {
	a.client.SetCurrentUser(nil)
	if err := a.sessions.Clear(); err != nil {
		Logger.Log.Errorf("clear persisted session: %v", err)
	}
	a.user = nil
	a.posts = nil
	a.composer = ""
	a.editDraft = nil
	a.registerView = false
	a.state = StateLoggedOut
	a.render(view.LoginForm())
}

func (a *App) enterMainFeed(ctx context.Context) {
	a.state = StateMainFeed
	a.loadPosts(ctx)
	a.renderMain()
}

// loadPosts rebuilds the feed from scratch in backend order. A reload
// failure keeps whatever was on screen.
func (a *App) loadPosts(ctx context.Context) {
	raws, err := a.client.ListPosts(ctx)
	if err != nil {
		Logger.Log.Errorf("load posts: %v", err)
		return
	}
	a.posts = model.DecodePosts(raws)
}

func (a *App) findPost(id int) *model.Post {
	for i := range a.posts {
		if a.posts[i].ID == id {
			return &a.posts[i]
		}
	}
	return nil
}

func (a *App) renderMain() {
	a.render(view.MainPage(a.user, a.composer, a.posts))
}

func (a *App) render(node *view.Node) {
	view.Render(a.out, node)
}
