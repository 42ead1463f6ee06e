package course

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/grading/core"
)

type (
	// RosterSource provides the course roster and its groups, e.g. a Canvas export.
	RosterSource interface {
		LoadRoster(ctx context.Context) (*People, []*Group, error)
	}

	// LoginResolver maps NUIDs to CSE logins.
	LoginResolver interface {
		ResolveLogins(ctx context.Context, nuids []string) (Resolution, error)
	}

	Service struct {
		roster RosterSource
		logins LoginResolver
		log    core.Logger
	}
)

func NewService(roster RosterSource, logins LoginResolver, log core.Logger) *Service {
	return &Service{roster: roster, logins: logins, log: log}
}

// Build loads the roster, resolves every NUID and classifies the roster.
func (svc *Service) Build(ctx context.Context, instructorNUIDs, graderNUIDs []string) (*Course, error) {
	roster, groups, err := svc.roster.LoadRoster(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "loading roster")
	}
	resolution, err := svc.logins.ResolveLogins(ctx, roster.NUIDs())
	if err != nil {
		return nil, errors.Wrap(err, "resolving logins")
	}

	c := New(Snapshot{
		Roster:          roster,
		Groups:          groups,
		Resolution:      resolution,
		InstructorNUIDs: instructorNUIDs,
		GraderNUIDs:     graderNUIDs,
	})
	svc.log.Info("course loaded", map[string]interface{}{
		"instructors": c.Instructors.Len(),
		"graders":     c.Graders.Len(),
		"students":    c.Students.Len(),
		"orphans":     c.Orphans.Len(),
		"groups":      len(c.Groups),
	})
	for _, p := range c.Orphans.List() {
		svc.log.Warn("no CSE login found", p)
	}
	return c, nil
}

// Assign generates a grading assignment for c and logs it under a fresh run ID.
func (svc *Service) Assign(c *Course, rng *rand.Rand) (Assignment, error) {
	runID := uuid.New().String()
	a, err := c.Assign(rng)
	if err != nil {
		svc.log.Error("assignment failed", err, map[string]interface{}{"run": runID})
		return nil, err
	}
	svc.log.Info("assignment generated", map[string]interface{}{"run": runID, "loads": a.Loads()})
	return a, nil
}
