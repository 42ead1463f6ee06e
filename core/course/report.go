package course

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// StudentEmailsHeader precedes the student email list, which is meant to be pasted into Piazza.
const StudentEmailsHeader = "===== Student Emails (for Piazza) ====="

// WriteSummary writes every role with its head count followed by its members in roster order.
func WriteSummary(w io.Writer, c *Course) error {
	var buf bytes.Buffer
	for _, role := range []struct {
		label  string
		people *People
	}{
		{"Instructors", c.Instructors},
		{"Graders", c.Graders},
		{"Students", c.Students},
		{"Orphans", c.Orphans},
	} {
		fmt.Fprintf(&buf, "%s (%d):\n", role.label, role.people.Len())
		for _, p := range role.people.List() {
			buf.WriteString(p.String())
			buf.WriteString("\n")
		}
	}
	_, err := buf.WriteTo(w)
	return err
}

func (c *Course) String() string {
	var buf bytes.Buffer
	_ = WriteSummary(&buf, c)
	return buf.String()
}

// WriteStudentEmails writes StudentEmailsHeader then one student email per line.
func WriteStudentEmails(w io.Writer, c *Course) error {
	var buf bytes.Buffer
	buf.WriteString(StudentEmailsHeader + "\n")
	for _, p := range c.Students.List() {
		buf.WriteString(p.Email + "\n")
	}
	_, err := buf.WriteTo(w)
	return err
}

// ExpectedLoad returns the range of students each grader should grade.
// It counts students, not groups, so it only approximates the load when group sizes vary.
func ExpectedLoad(students, graders int) (min, max int, err error) {
	if graders <= 0 {
		return 0, 0, ErrDivisionUndefined
	}
	return students / graders, (students + graders - 1) / graders, nil
}

// WriteAssignment writes a human-readable assignment, ordered by grader name
// and, for each grader, by the name of each group's first member.
// Nothing is written if the assignment cannot be rendered.
func WriteAssignment(w io.Writer, a Assignment, students, graders int) error {
	min, max, err := ExpectedLoad(students, graders)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("Assigned Grading\n")
	buf.WriteString("================\n")
	fmt.Fprintf(&buf, "Each grader will grade %d - %d students\n", min, max)

	for _, grader := range SortedGraders(a) {
		groups, err := SortedGroups(a[grader])
		if err != nil {
			return errors.Wrapf(err, "rendering groups of %s", grader.Name)
		}
		fmt.Fprintf(&buf, "%s (%d assigned)\n", grader.Name, len(groups))
		WriteGroups(&buf, groups)
	}
	_, err = buf.WriteTo(w)
	return err
}

// WriteGroups writes the groups in the given order.
func WriteGroups(buf *bytes.Buffer, groups []*Group) {
	for _, g := range groups {
		buf.WriteString(g.String())
	}
}

// SortedGraders returns the graders of a by name, then NUID.
func SortedGraders(a Assignment) []*Person {
	graders := make([]*Person, 0, len(a))
	for g := range a {
		graders = append(graders, g)
	}
	sort.Slice(graders, func(i, j int) bool {
		if graders[i].Name != graders[j].Name {
			return graders[i].Name < graders[j].Name
		}
		return graders[i].NUID < graders[j].NUID
	})
	return graders
}

// SortedGroups returns a copy of groups ordered by the name of their first member.
// Groups with equal keys keep their relative order.
func SortedGroups(groups []*Group) ([]*Group, error) {
	sorted := make([]*Group, len(groups))
	keys := make(map[*Group]string, len(groups))
	for i, g := range groups {
		leader, err := g.Leader()
		if err != nil {
			return nil, err
		}
		keys[g] = leader.Name
		sorted[i] = g
	}
	sort.SliceStable(sorted, func(i, j int) bool { return keys[sorted[i]] < keys[sorted[j]] })
	return sorted, nil
}
