package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mvcarvalho/socialnet/api"
	"github.com/mvcarvalho/socialnet/app"
	"github.com/mvcarvalho/socialnet/store"
	"github.com/mvcarvalho/socialnet/utils/dotenv"
	. "github.com/mvcarvalho/socialnet/utils/flag"
	. "github.com/mvcarvalho/socialnet/utils/log"
)

// The shell maps one line to one user gesture. Each handler runs its API
// round-trip to completion before the next line is read, so actions never
// overlap.
const usage = `commands:
  login <email> <password>
  register <username> <email> <password> <confirm>
  toggle                       switch between login and register
  feed | profile | explore | notifications | messages
  compose <text>               set the post draft
  publish                      publish the draft
  like <post-id>               toggle like
  delete <post-id>
  edit                         open the profile editor
  set name|bio|avatar <value>  change a field of the open editor
  save | cancel                close the profile editor
  logout
  quit`

func main() {
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	Parse()

	baseURL := APIBase
	if env := os.Getenv("SOCIALNET_API_BASE"); env != "" {
		baseURL = env
	}

	if IsDevelopment {
		Log.Infof("using backend at %s", baseURL)
	}

	client, err := api.New(api.Config{BaseURL: baseURL})
	if err != nil {
		Log.Fatalf("create api client: %v", err)
	}
	sessions, err := store.NewLocalSessionStore(SessionFile)
	if err != nil {
		Log.Fatalf("create session store: %v", err)
	}

	ctx := context.Background()
	a := app.New(client, sessions, os.Stdout)
	a.Init(ctx)

	Log.Info("socialnet client started")
	fmt.Println(usage)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" {
			break
		}
		dispatch(ctx, a, line)
	}

	Log.Info("socialnet client shutdown")
}

func dispatch(ctx context.Context, a *app.App, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "login":
		if len(args) != 2 {
			fmt.Println("usage: login <email> <password>")
			return
		}
		a.SubmitLogin(ctx, args[0], args[1])
	case "register":
		if len(args) != 4 {
			fmt.Println("usage: register <username> <email> <password> <confirm>")
			return
		}
		a.SubmitRegister(ctx, args[0], args[1], args[2], args[3])
	case "toggle":
		a.ToggleRegister()
	case "feed", "profile", "explore", "notifications", "messages":
		a.Navigate(ctx, cmd)
	case "compose":
		a.UpdateComposer(strings.TrimSpace(strings.TrimPrefix(line, "compose")))
	case "publish":
		if !a.ComposerEnabled() {
			fmt.Println("nothing to publish, use: compose <text>")
			return
		}
		a.SubmitPost(ctx)
	case "like":
		if id, ok := parseID(args); ok {
			a.ToggleLike(ctx, id)
		}
	case "delete":
		if id, ok := parseID(args); ok {
			a.DeletePost(ctx, id)
		}
	case "edit":
		a.OpenEditProfile()
	case "set":
		if len(args) < 2 {
			fmt.Println("usage: set name|bio|avatar <value>")
			return
		}
		value := strings.Join(args[1:], " ")
		switch args[0] {
		case "name":
			a.SetEditName(value)
		case "bio":
			a.SetEditBio(value)
		case "avatar":
			a.SetEditAvatar(value)
		default:
			fmt.Println("usage: set name|bio|avatar <value>")
		}
	case "save":
		a.SaveProfile()
	case "cancel":
		a.CancelEditProfile()
	case "logout":
		a.Logout()
	case "help":
		fmt.Println(usage)
	default:
		fmt.Printf("unknown command %q, try help\n", cmd)
	}
}

func parseID(args []string) (int, bool) {
	if len(args) != 1 {
		fmt.Println("usage: like|delete <post-id>")
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("invalid post id %q\n", args[0])
		return 0, false
	}
	return id, true
}
