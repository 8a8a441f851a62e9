package cli

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/loggy/internal/filex"
)

const sessionFileName = "session"

// sessionStore keeps the session token between runs.
type sessionStore struct {
	path string
}

func newSessionStore(dirName string) (*sessionStore, error) {
	dir, err := filex.EnsureSubdDir(dirName)
	if err != nil {
		return nil, err
	}
	return &sessionStore{path: filepath.Join(dir, sessionFileName)}, nil
}

// Load returns the saved token, or "" when there is none.
func (s *sessionStore) Load() (string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (s *sessionStore) Save(token string) error {
	return filex.WritePrivate(s.path, []byte(token))
}

func (s *sessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
