package course

// Snapshot is everything needed to build a Course.
type Snapshot struct {
	Roster          *People
	Groups          []*Group
	Resolution      Resolution
	InstructorNUIDs []string
	GraderNUIDs     []string
}

// New classifies the roster into instructors, graders, students and orphans.
//
// Each roster person gets its login from snap.Resolution first. Then, in roster order:
//   - no login: orphan, whatever the override lists say
//   - listed as instructor and/or grader: added to each listed role
//   - anyone else: student
func New(snap Snapshot) *Course {
	instructorNUIDs := newNUIDSet(snap.InstructorNUIDs)
	graderNUIDs := newNUIDSet(snap.GraderNUIDs)

	c := &Course{
		Instructors: NewPeople(),
		Graders:     NewPeople(),
		Students:    NewPeople(),
		Orphans:     NewPeople(),
		Groups:      append([]*Group(nil), snap.Groups...),
	}

	for _, p := range snap.Roster.List() {
		if login, ok := snap.Resolution.Login(p.NUID); ok {
			p.Login = login
		}
	}

	for _, p := range snap.Roster.List() {
		_, isInstructor := instructorNUIDs[p.NUID]
		_, isGrader := graderNUIDs[p.NUID]
		switch {
		case !p.HasLogin():
			c.Orphans.Add(p)
		case isInstructor || isGrader:
			if isInstructor {
				c.Instructors.Add(p)
			}
			if isGrader {
				c.Graders.Add(p)
			}
		default:
			c.Students.Add(p)
		}
	}
	return c
}

type nuidSet map[string]struct{}

func newNUIDSet(nuids []string) nuidSet {
	set := make(nuidSet, len(nuids))
	for _, nuid := range nuids {
		set[nuid] = struct{}{}
	}
	return set
}
