package rosterfile

import (
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/trezcool/grading/core"
	"github.com/trezcool/grading/core/course"
)

// export is the on-disk layout of a roster export.
type export struct {
	People []course.Person `yaml:"people"`
	Groups [][]string      `yaml:"groups"` // NUIDs
}

type source struct {
	path string
}

var _ course.RosterSource = (*source)(nil)

// NewSource returns a course.RosterSource reading the YAML roster export at path.
func NewSource(path string) course.RosterSource {
	return &source{path: path}
}

func (src *source) LoadRoster(ctx context.Context) (*course.People, []*course.Group, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(src.path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "reading roster export")
	}
	return Parse(data)
}

// Parse decodes a YAML roster export. Groups must only reference NUIDs listed under people.
func Parse(data []byte) (*course.People, []*course.Group, error) {
	var exp export
	if err := yaml.Unmarshal(data, &exp); err != nil {
		return nil, nil, errors.Wrap(err, "decoding roster export")
	}

	roster := course.NewPeople()
	for i := range exp.People {
		p := exp.People[i]
		p.NUID = core.CleanString(p.NUID)
		p.Name = core.CleanString(p.Name)
		p.Email = core.CleanString(p.Email, true /* lower */)
		p.Login = ""
		if err := core.ValidateStruct(p); err != nil {
			return nil, nil, errors.Wrapf(err, "person #%d", i+1)
		}
		roster.Add(&p)
	}

	groups := make([]*course.Group, 0, len(exp.Groups))
	for i, nuids := range exp.Groups {
		members := make([]*course.Person, 0, len(nuids))
		for _, nuid := range nuids {
			nuid = core.CleanString(nuid)
			p, ok := roster.Get(nuid)
			if !ok {
				return nil, nil, core.InvalidField(fmt.Sprintf("groups[%d]", i), fmt.Sprintf("unknown nuid %q", nuid))
			}
			members = append(members, p)
		}
		groups = append(groups, course.NewGroup(members...))
	}
	return roster, groups, nil
}
