package testutil

import (
	"context"
	"fmt"
	"testing"

	"github.com/trezcool/grading/core/course"
)

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) Fatal(string, ...interface{}) {}

// CreatePerson returns a person without login.
func CreatePerson(t *testing.T, nuid, name string) *course.Person {
	t.Helper()
	if nuid == "" {
		t.Fatal("CreatePerson() failed: empty nuid")
	}
	return &course.Person{NUID: nuid, Name: name, Email: nuid + "@unl.edu"}
}

// CreateRoster returns n people named "Person 00".."Person n-1" with NUIDs "000".."n-1".
func CreateRoster(t *testing.T, n int) *course.People {
	t.Helper()
	roster := course.NewPeople()
	for i := 0; i < n; i++ {
		roster.Add(CreatePerson(t, fmt.Sprintf("%03d", i), fmt.Sprintf("Person %02d", i)))
	}
	return roster
}

// ResolveAll resolves every roster NUID to the login "l<nuid>".
func ResolveAll(roster *course.People) course.Resolution {
	res := make(course.Resolution, roster.Len())
	for _, nuid := range roster.NUIDs() {
		res[nuid] = "l" + nuid
	}
	return res
}

// CreateGroups splits people into groups of size members, the last one possibly smaller.
func CreateGroups(people []*course.Person, size int) []*course.Group {
	if size <= 0 {
		return []*course.Group{}
	}
	groups := make([]*course.Group, 0, len(people)/size+1)
	for start := 0; start < len(people); start += size {
		end := start + size
		if end > len(people) {
			end = len(people)
		}
		groups = append(groups, course.NewGroup(people[start:end]...))
	}
	return groups
}

// RosterSource is an in-memory course.RosterSource.
type RosterSource struct {
	Roster *course.People
	Groups []*course.Group
	Err    error
}

func (src RosterSource) LoadRoster(context.Context) (*course.People, []*course.Group, error) {
	if src.Err != nil {
		return nil, nil, src.Err
	}
	return src.Roster, src.Groups, nil
}

// StaticResolver is a course.LoginResolver returning a fixed resolution.
type StaticResolver course.Resolution

func (r StaticResolver) ResolveLogins(_ context.Context, nuids []string) (course.Resolution, error) {
	res := make(course.Resolution, len(nuids))
	for _, nuid := range nuids {
		if login, ok := r[nuid]; ok {
			res[nuid] = login
		}
	}
	return res, nil
}
