package loginstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// Snapshot is a persisted NUID => CSE login cache, stored as a JSON object.
type Snapshot struct {
	path   string
	mu     sync.RWMutex
	logins map[string]string
	dirty  bool
}

// OpenSnapshot loads the snapshot at path. A missing file is an empty snapshot.
func OpenSnapshot(path string) (*Snapshot, error) {
	snap := &Snapshot{path: path, logins: make(map[string]string)}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return snap, nil
		}
		return nil, errors.Wrap(err, "reading login snapshot")
	}
	if len(data) == 0 {
		return snap, nil
	}
	if err := json.Unmarshal(data, &snap.logins); err != nil {
		return nil, errors.Wrapf(err, "decoding login snapshot %s", path)
	}
	return snap, nil
}

func (s *Snapshot) Get(nuid string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	login, ok := s.logins[nuid]
	return login, ok
}

func (s *Snapshot) Set(nuid, login string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.logins[nuid]; ok && old == login {
		return
	}
	s.logins[nuid] = login
	s.dirty = true
}

func (s *Snapshot) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.logins)
}

// Save writes the snapshot back to disk if it changed since it was opened or last saved.
func (s *Snapshot) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	data, err := json.MarshalIndent(s.logins, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding login snapshot")
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*")
	if err != nil {
		return errors.Wrap(err, "saving login snapshot")
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		return errors.Wrap(err, "saving login snapshot")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "saving login snapshot")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "saving login snapshot")
	}
	s.dirty = false
	return nil
}
