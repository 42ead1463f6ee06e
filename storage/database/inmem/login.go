package inmemdb

import (
	"context"
	"sync"

	"github.com/trezcool/grading/storage/logins"
)

type loginDirectory struct {
	mutex  sync.RWMutex
	logins map[string]string
	calls  int
}

// LoginDirectory is an in-memory loginstore.Directory.
type LoginDirectory interface {
	loginstore.Directory
	Add(nuid, login string)
	// Calls counts LookupLogins calls.
	Calls() int
}

func NewLoginDirectory(logins map[string]string) LoginDirectory {
	dir := &loginDirectory{logins: make(map[string]string, len(logins))}
	for nuid, login := range logins {
		dir.logins[nuid] = login
	}
	return dir
}

func (dir *loginDirectory) Add(nuid, login string) {
	dir.mutex.Lock()
	defer dir.mutex.Unlock()
	dir.logins[nuid] = login
}

func (dir *loginDirectory) Calls() int {
	dir.mutex.RLock()
	defer dir.mutex.RUnlock()
	return dir.calls
}

func (dir *loginDirectory) LookupLogins(ctx context.Context, nuids []string) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir.mutex.Lock()
	defer dir.mutex.Unlock()
	dir.calls++

	found := make(map[string]string, len(nuids))
	for _, nuid := range nuids {
		if login, ok := dir.logins[nuid]; ok {
			found[nuid] = login
		}
	}
	return found, nil
}
