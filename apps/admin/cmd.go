package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/trezcool/grading/core"
	"github.com/trezcool/grading/core/course"
	"github.com/trezcool/grading/storage/database"
)

var (
	readPasswordFunc = term.ReadPassword                             // mockable
	seedFunc         = func() int64 { return time.Now().UnixNano() } // mockable
	migrateFunc      = database.Migrate                              // mockable

	errHelp = errors.New("help provided")
	errNoDB = errors.New("no directory database configured (set course.loginSource to database)")
)

type commandLine struct {
	out     io.Writer
	log     core.Logger
	conf    *core.Config
	svc     *course.Service
	mailSvc core.EmailService
	db      *sql.DB // nil unless the login source is the directory database
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage: admin [-config FILE] COMMAND")
	fmt.Fprintln(cli.out, "  course                   - print instructors, graders, students, orphans and student emails")
	fmt.Fprintln(cli.out, "  emails                   - print student emails")
	fmt.Fprintln(cli.out, "  assign [-seed N] [-notify] - print a random grading assignment, optionally mailing graders")
	fmt.Fprintln(cli.out, "  migrate [COMMAND [ARGS]] - run directory database migrations (default: up)")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	assignCmd := flag.NewFlagSet("assign", flag.ContinueOnError)
	assignCmd.SetOutput(cli.out)
	assignSeed := assignCmd.Int64("seed", 0, "Random seed; a run with the same seed and roster yields the same assignment. 0 picks one.")
	assignNotify := assignCmd.Bool("notify", false, "Email every grader their groups.")

	ctx := context.Background()
	switch args[1] {
	case "course":
		return cli.printCourse(ctx)
	case "emails":
		return cli.printEmails(ctx)
	case "assign":
		if err := assignCmd.Parse(args[2:]); err != nil {
			if err == flag.ErrHelp {
				return errHelp
			}
			return err
		}
		return cli.assign(ctx, *assignSeed, *assignNotify)
	case "migrate":
		return cli.migrate(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) build(ctx context.Context) (*course.Course, error) {
	return cli.svc.Build(ctx, cli.conf.Course.InstructorNUIDs, cli.conf.Course.GraderNUIDs)
}

func (cli *commandLine) printCourse(ctx context.Context) error {
	c, err := cli.build(ctx)
	if err != nil {
		return err
	}
	if err := course.WriteSummary(cli.out, c); err != nil {
		return err
	}
	fmt.Fprint(cli.out, "\n\n")
	return course.WriteStudentEmails(cli.out, c)
}

func (cli *commandLine) printEmails(ctx context.Context) error {
	c, err := cli.build(ctx)
	if err != nil {
		return err
	}
	return course.WriteStudentEmails(cli.out, c)
}

func (cli *commandLine) assign(ctx context.Context, seed int64, notify bool) error {
	c, err := cli.build(ctx)
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = seedFunc()
	}
	cli.log.Info(fmt.Sprintf("assigning with seed %d", seed))

	a, err := cli.svc.Assign(c, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	if err := course.WriteAssignment(cli.out, a, c.Students.Len(), c.Graders.Len()); err != nil {
		return err
	}
	if notify {
		return course.NotifyGraders(cli.mailSvc, a, cli.conf.Course.Name)
	}
	return nil
}

func (cli *commandLine) migrate(args []string) error {
	if cli.db == nil {
		return errNoDB
	}
	command := "up"
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}
	return migrateFunc(cli.db, command, args...)
}

// promptDBPassword asks for the directory database password when the config names a user but no password.
func promptDBPassword(conf *core.Config, prompt io.Writer) error {
	if conf.Database.User == "" || conf.Database.Password != "" {
		return nil
	}
	fmt.Fprintf(prompt, "Password for database user %s:", conf.Database.User)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(prompt)
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	conf.Database.Password = string(pwd)
	return nil
}
