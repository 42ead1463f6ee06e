package course

import (
	"fmt"
	"strings"
)

// NoMatch is what the login directory reports for a NUID it does not know.
const NoMatch = "no match found"

// Person is a roster member. Login is the person's CSE login, empty until resolved.
type Person struct {
	NUID  string `yaml:"nuid" json:"nuid" validate:"required,nuid"`
	Name  string `yaml:"name" json:"name" validate:"required"`
	Email string `yaml:"email" json:"email" validate:"omitempty,email"`
	Login string `yaml:"-" json:"login,omitempty"`
}

func (p *Person) HasLogin() bool { return p.Login != "" }

func (p *Person) String() string {
	login := p.Login
	if login == "" {
		login = "?"
	}
	return fmt.Sprintf("%s (%s, %s) <%s>", p.Name, p.NUID, login, p.Email)
}

// Group is a submission unit graded together.
type Group struct {
	Members []*Person
}

func NewGroup(members ...*Person) *Group {
	return &Group{Members: members}
}

// Leader is the member whose name orders the group in reports.
// A nil group, an empty one or one holding a nil member has no leader.
func (g *Group) Leader() (*Person, error) {
	if g == nil || len(g.Members) == 0 {
		return nil, ErrMalformedGroup
	}
	for _, m := range g.Members {
		if m == nil {
			return nil, ErrMalformedGroup
		}
	}
	return g.Members[0], nil
}

func (g *Group) String() string {
	if g == nil {
		return ""
	}
	var b strings.Builder
	for _, m := range g.Members {
		if m == nil {
			continue
		}
		b.WriteString("    ")
		b.WriteString(m.String())
		b.WriteString("\n")
	}
	return b.String()
}

// People maps NUIDs to persons and remembers insertion order.
type People struct {
	nuids []string
	index map[string]*Person
}

func NewPeople(persons ...*Person) *People {
	pp := &People{index: make(map[string]*Person, len(persons))}
	for _, p := range persons {
		pp.Add(p)
	}
	return pp
}

// Add inserts p, or replaces the person stored under p.NUID without moving it.
func (pp *People) Add(p *Person) {
	if pp.index == nil {
		pp.index = make(map[string]*Person)
	}
	if _, ok := pp.index[p.NUID]; !ok {
		pp.nuids = append(pp.nuids, p.NUID)
	}
	pp.index[p.NUID] = p
}

func (pp *People) Get(nuid string) (*Person, bool) {
	if pp == nil {
		return nil, false
	}
	p, ok := pp.index[nuid]
	return p, ok
}

func (pp *People) Has(nuid string) bool {
	_, ok := pp.Get(nuid)
	return ok
}

func (pp *People) Len() int {
	if pp == nil {
		return 0
	}
	return len(pp.nuids)
}

// NUIDs returns a copy of the NUIDs in insertion order.
func (pp *People) NUIDs() []string {
	if pp == nil {
		return nil
	}
	return append([]string(nil), pp.nuids...)
}

// List returns the persons in insertion order.
func (pp *People) List() []*Person {
	if pp == nil {
		return nil
	}
	list := make([]*Person, 0, len(pp.nuids))
	for _, nuid := range pp.nuids {
		list = append(list, pp.index[nuid])
	}
	return list
}

// Resolution maps NUIDs to CSE logins as reported by the login directory.
type Resolution map[string]string

// Login returns the resolved login of nuid. Missing, blank and NoMatch entries are unresolved.
func (r Resolution) Login(nuid string) (string, bool) {
	login := strings.TrimSpace(r[nuid])
	if login == "" || login == NoMatch {
		return "", false
	}
	return login, true
}

// Course holds the classified roster. Build it with New.
type Course struct {
	Instructors *People
	Graders     *People
	Students    *People
	Orphans     *People // no CSE login
	Groups      []*Group
}
