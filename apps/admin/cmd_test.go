package main

import (
	"bytes"
	"database/sql"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"testing"

	"github.com/trezcool/grading/core"
	"github.com/trezcool/grading/core/course"
	"github.com/trezcool/grading/services/email"
	"github.com/trezcool/grading/tests"
)

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantOutput []string
}

func setup(t *testing.T, graders int) (*commandLine, *bytes.Buffer, *emailsvc.ServiceMock) {
	t.Helper()
	roster := testutil.CreateRoster(t, 8)
	people := roster.List()
	res := testutil.ResolveAll(roster)
	delete(res, "007")

	out := new(bytes.Buffer)
	mailSvc := emailsvc.NewServiceMock()
	conf := &core.Config{AppName: "Grading"}
	conf.Course.Name = "CSCE 156"
	conf.Course.InstructorNUIDs = []string{"000"}
	conf.Course.GraderNUIDs = roster.NUIDs()[1 : 1+graders]

	return &commandLine{
		out:  out,
		log:  testutil.NopLogger{},
		conf: conf,
		svc: course.NewService(
			testutil.RosterSource{Roster: roster, Groups: testutil.CreateGroups(people[3:7], 1)},
			testutil.StaticResolver(res),
			testutil.NopLogger{},
		),
		mailSvc: mailSvc,
	}, out, mailSvc
}

func Test_commandLine_run(t *testing.T) {
	seedFunc = func() int64 { return 1 }

	tests := []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{
			name: "course",
			args: []string{"course"},
			wantOutput: []string{
				"Instructors (1):", "Graders (2):", "Students (4):", "Orphans (1):",
				"Person 07 (007, ?)", course.StudentEmailsHeader, "003@unl.edu\n004@unl.edu\n005@unl.edu\n006@unl.edu\n",
			},
		},
		{name: "emails", args: []string{"emails"}, wantOutput: []string{course.StudentEmailsHeader + "\n003@unl.edu\n"}},
		{
			name:       "assign",
			args:       []string{"assign", "-seed", "3"},
			wantOutput: []string{"Each grader will grade 2 - 2 students", "Person 01 (2 assigned)", "Person 02 (2 assigned)"},
		},
		{name: "assign: bad flag", args: []string{"assign", "-seed", "lol"}, wantOutput: []string{"invalid value"}},
		{name: "assign: help", args: []string{"assign", "-h"}, wantErr: errHelp},
		{name: "migrate: no database", args: []string{"migrate"}, wantErr: errNoDB},
	}
	for _, tt := range tests {
		args := append([]string{"admin"}, tt.args...)

		t.Run(tt.name, func(t *testing.T) {
			cli, out, _ := setup(t, 2)
			err := cli.run(args)
			if tt.wantErr != nil {
				if err != tt.wantErr {
					t.Errorf("cli.run() error = %v, wantErr %v", err, tt.wantErr)
				}
			} else if tt.wantOutput == nil && err != nil {
				t.Errorf("cli.run() unexpected error = %v", err)
			}
			for _, want := range tt.wantOutput {
				if !strings.Contains(out.String(), want) {
					t.Errorf("cli.run() output misses %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func Test_commandLine_assign_seed(t *testing.T) {
	render := func(args ...string) string {
		cli, out, _ := setup(t, 3)
		if err := cli.run(append([]string{"admin", "assign"}, args...)); err != nil {
			t.Fatalf("cli.run() error = %v", err)
		}
		return out.String()
	}

	if first, second := render("-seed", "42"), render("-seed", "42"); first != second {
		t.Errorf("same seed, different assignments:\n%s\n---\n%s", first, second)
	}

	seedFunc = func() int64 { return 42 }
	if first, second := render("-seed", "42"), render(); first != second {
		t.Errorf("seedFunc not used:\n%s\n---\n%s", first, second)
	}
}

func Test_commandLine_assign_errors(t *testing.T) {
	cli, out, _ := setup(t, 0)
	err := cli.run([]string{"admin", "assign", "-seed", "1"})
	if err != course.ErrInvalidAssignment {
		t.Errorf("cli.run() error = %v, wantErr %v", err, course.ErrInvalidAssignment)
	}
	if out.Len() > 0 {
		t.Errorf("cli.run() wrote %q", out.String())
	}
}

func Test_commandLine_assign_notify(t *testing.T) {
	cli, _, mailSvc := setup(t, 2)
	if err := cli.run([]string{"admin", "assign", "-seed", "5", "-notify"}); err != nil {
		t.Fatalf("cli.run() error = %v", err)
	}
	if len(mailSvc.Sent) != 2 {
		t.Fatalf("len(Sent) = %d, want 2", len(mailSvc.Sent))
	}
	if !strings.Contains(mailSvc.Sent[0].TextContent, "for CSCE 156") {
		t.Errorf("unexpected mail:\n%s", mailSvc.Sent[0].TextContent)
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _, _ := setup(t, 1)
	db, err := sql.Open("postgres", "postgres://localhost/directory?sslmode=disable")
	if err != nil {
		t.Fatalf("sql.Open() error = %v", err)
	}
	defer db.Close()
	cli.db = db

	var gotCommand string
	var gotArgs []string
	migrateFunc = func(_ *sql.DB, command string, args ...string) error {
		gotCommand, gotArgs = command, args
		return nil
	}

	tests := []struct {
		args        []string
		wantCommand string
		wantArgs    []string
	}{
		{args: []string{"migrate"}, wantCommand: "up"},
		{args: []string{"migrate", "down"}, wantCommand: "down"},
		{args: []string{"migrate", "up-to", "1"}, wantCommand: "up-to", wantArgs: []string{"1"}},
	}
	for _, tt := range tests {
		gotCommand, gotArgs = "", nil
		if err := cli.run(append([]string{"admin"}, tt.args...)); err != nil {
			t.Errorf("cli.run(%v) error = %v", tt.args, err)
			continue
		}
		if gotCommand != tt.wantCommand || strings.Join(gotArgs, " ") != strings.Join(tt.wantArgs, " ") {
			t.Errorf("cli.run(%v) ran %s %v, want %s %v", tt.args, gotCommand, gotArgs, tt.wantCommand, tt.wantArgs)
		}
	}
}

func Test_promptDBPassword(t *testing.T) {
	errTerm := errors.New("not a terminal")

	tests := []struct {
		name       string
		user, pwd  string
		readPwd    string
		readErr    error
		wantPwd    string
		wantPrompt bool
		wantErr    bool
	}{
		{name: "no user", wantPwd: ""},
		{name: "password configured", user: "grader", pwd: "secret", wantPwd: "secret"},
		{name: "prompted", user: "grader", readPwd: "typed", wantPwd: "typed", wantPrompt: true},
		{name: "read error", user: "grader", readErr: errTerm, wantPrompt: true, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var called bool
			readPasswordFunc = func(fd int) ([]byte, error) {
				called = true
				return []byte(tt.readPwd), tt.readErr
			}

			conf := &core.Config{}
			conf.Database.User, conf.Database.Password = tt.user, tt.pwd
			prompt := new(bytes.Buffer)

			err := promptDBPassword(conf, prompt)
			if (err != nil) != tt.wantErr {
				t.Fatalf("promptDBPassword() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, errTerm) {
				t.Errorf("promptDBPassword() error = %v, want %v", err, errTerm)
			}
			if called != tt.wantPrompt {
				t.Errorf("readPasswordFunc called = %v, want %v", called, tt.wantPrompt)
			}
			if tt.wantPrompt && !strings.Contains(prompt.String(), "Password for database user grader:") {
				t.Errorf("unexpected prompt %q", prompt.String())
			}
			if !tt.wantErr && conf.Database.Password != tt.wantPwd {
				t.Errorf("Password = %q, want %q", conf.Database.Password, tt.wantPwd)
			}
		})
	}
}

func Test_newMailService(t *testing.T) {
	const console, sendgrid = "*emailsvc.consoleService", "*emailsvc.sendgridService"

	tests := []struct {
		env, key string
		want     string
	}{
		{env: "DEV", key: "SG.key", want: console},
		{env: "TEST", key: "SG.key", want: console},
		{env: "PROD", want: console},
		{env: "PROD", key: "SG.key", want: sendgrid},
		{env: "QA", key: "SG.key", want: sendgrid},
	}
	for _, tt := range tests {
		conf := &core.Config{Env: tt.env, Debug: true, SendgridAPIKey: tt.key, AppName: "Grading"}
		if got := fmt.Sprintf("%T", newMailService(conf, new(bytes.Buffer))); got != tt.want {
			t.Errorf("newMailService(%s, key=%q) = %s, want %s", tt.env, tt.key, got, tt.want)
		}
	}
}

func Test_newMailService_console(t *testing.T) {
	console := new(bytes.Buffer)
	svc := newMailService(&core.Config{Env: "DEV", AppName: "Grading"}, console)

	err := svc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Address: "grader@unl.edu"}},
		Subject: "Grading assignment",
		BodyStr: "groups",
	})
	if err != nil {
		t.Fatalf("SendMessages() error = %v", err)
	}
	if !strings.Contains(console.String(), "Subject: [Grading] Grading assignment") {
		t.Errorf("console misses the mail:\n%s", console.String())
	}
}
