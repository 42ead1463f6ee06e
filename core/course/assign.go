package course

import "math/rand"

// Assignment maps each grader to the groups they have to grade.
type Assignment map[*Person][]*Group

// Loads returns the number of groups assigned to each grader, keyed by NUID.
func (a Assignment) Loads() map[string]int {
	loads := make(map[string]int, len(a))
	for grader, groups := range a {
		loads[grader.NUID] = len(groups)
	}
	return loads
}

// Assign distributes the course groups among its graders. See Assign.
func (c *Course) Assign(rng *rand.Rand) (Assignment, error) {
	return Assign(c.Graders, c.Groups, rng)
}

// Assign randomly distributes groups among graders in a round-robin manner,
// so that the same grader(s) are not always assigned more (or fewer) groups.
//
// The algorithm:
//  1. Shuffle the graders and, independently, the groups using rng
//  2. Give every grader an empty list
//  3. Hand the i-th shuffled group to the (i mod N)-th shuffled grader
//
// Every grader ends up with floor(G/N) or ceil(G/N) groups.
// The same rng seed yields the same Assignment. rng must not be nil.
func Assign(graders *People, groups []*Group, rng *rand.Rand) (Assignment, error) {
	nuids := graders.NUIDs()
	if len(nuids) == 0 && len(groups) > 0 {
		return nil, ErrInvalidAssignment
	}

	shuffled := append([]*Group(nil), groups...)
	rng.Shuffle(len(nuids), func(i, j int) { nuids[i], nuids[j] = nuids[j], nuids[i] })
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	assignment := make(Assignment, len(nuids))
	order := make([]*Person, 0, len(nuids))
	for _, nuid := range nuids {
		g, _ := graders.Get(nuid)
		assignment[g] = []*Group{}
		order = append(order, g)
	}

	for i, group := range shuffled {
		g := order[i%len(order)]
		assignment[g] = append(assignment[g], group)
	}
	return assignment, nil
}
