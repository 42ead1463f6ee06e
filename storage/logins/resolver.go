package loginstore

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/grading/core/course"
)

// Directory looks up CSE logins. NUIDs it does not know are left out of the result.
type Directory interface {
	LookupLogins(ctx context.Context, nuids []string) (map[string]string, error)
}

type cachingResolver struct {
	snap *Snapshot
	dir  Directory
}

var _ course.LoginResolver = (*cachingResolver)(nil)

// NewCachingResolver resolves logins from snap first and asks dir for the rest.
// Logins found in dir are added to snap, which is then saved. dir may be nil to work offline.
func NewCachingResolver(snap *Snapshot, dir Directory) course.LoginResolver {
	return &cachingResolver{snap: snap, dir: dir}
}

func (r *cachingResolver) ResolveLogins(ctx context.Context, nuids []string) (course.Resolution, error) {
	res := make(course.Resolution, len(nuids))
	misses := make([]string, 0)
	for _, nuid := range nuids {
		if login, ok := r.snap.Get(nuid); ok {
			res[nuid] = login
			continue
		}
		misses = append(misses, nuid)
	}

	if r.dir == nil || len(misses) == 0 {
		return res, nil
	}

	found, err := r.dir.LookupLogins(ctx, misses)
	if err != nil {
		return nil, errors.Wrap(err, "looking up logins")
	}
	for _, nuid := range misses {
		login := strings.TrimSpace(found[nuid])
		if login == "" || login == course.NoMatch {
			res[nuid] = course.NoMatch
			continue
		}
		r.snap.Set(nuid, login)
		res[nuid] = login
	}
	if err := r.snap.Save(); err != nil {
		return nil, err
	}
	return res, nil
}
