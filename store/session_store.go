package store

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/mvcarvalho/socialnet/model"
)

// SessionStore persists the single logged-in user slot between runs. There
// is exactly one slot: writing replaces it, clearing empties it.
type SessionStore interface {
	Load() (*model.User, error)
	Save(user *model.User) error
	Clear() error
}

// LocalSessionStore keeps the slot in one JSON file on disk.
type LocalSessionStore struct {
	path string
}

// NewLocalSessionStore creates a file backed session store at path. An empty
// path defaults to ~/.socialnet/session.json. The parent directory is
// created on demand.
func NewLocalSessionStore(path string) (*LocalSessionStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "resolve home directory for session file")
		}
		path = filepath.Join(home, ".socialnet", "session.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(err, "create session directory")
	}

	return &LocalSessionStore{path: path}, nil
}

// Load reads the saved session. A missing file is not an error, it just
// means nobody is logged in.
func (s *LocalSessionStore) Load() (*model.User, error) {
	data, err := ioutil.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read session file")
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, errors.Wrap(err, "parse session file")
	}
	return &user, nil
}

func (s *LocalSessionStore) Save(user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return errors.Wrap(err, "serialize session")
	}
	if err := ioutil.WriteFile(s.path, data, 0600); err != nil {
		return errors.Wrap(err, "write session file")
	}
	return nil
}

func (s *LocalSessionStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove session file")
	}
	return nil
}
