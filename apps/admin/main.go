package main

import (
	"flag"
	"io"
	"log"
	"os"

	"github.com/trezcool/grading/core"
	"github.com/trezcool/grading/core/course"
	"github.com/trezcool/grading/services/email"
	"github.com/trezcool/grading/services/logger"
	"github.com/trezcool/grading/storage/database"
	"github.com/trezcool/grading/storage/database/sqlx"
	"github.com/trezcool/grading/storage/logins"
	"github.com/trezcool/grading/storage/roster"
)

var stdLogger *log.Logger

func main() {
	stdLogger = log.New(os.Stderr, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	flags := flag.NewFlagSet("admin", flag.ExitOnError)
	configFile := flags.String("config", "", "Config file (yaml, json or toml).")
	_ = flags.Parse(os.Args[1:])
	args := append([]string{os.Args[0]}, flags.Args()...)

	conf, err := core.NewConfig(*configFile)
	errAndDie(err)

	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	defer logger.Close()

	// set up login resolution
	snap, err := loginstore.OpenSnapshot(conf.Course.LoginSnapshotFile)
	if err != nil {
		logger.Fatal("opening login snapshot", err)
	}

	cli := commandLine{
		out:  os.Stdout,
		log:  logger,
		conf: conf,
	}

	var dir loginstore.Directory
	if conf.Course.LoginSource == core.LoginSourceDatabase {
		if err := promptDBPassword(conf, os.Stderr); err != nil {
			logger.Fatal("reading database password", err)
		}
		if cli.db, err = database.Open(conf); err != nil {
			logger.Fatal("opening directory database", err)
		}
		defer cli.db.Close()
		dir = sqlxrepos.NewLoginDirectory(cli.db)
	}
	cli.svc = course.NewService(
		rosterfile.NewSource(conf.Course.RosterFile),
		loginstore.NewCachingResolver(snap, dir),
		logger,
	)

	// mails printed to the console go to stderr, keeping stdout for reports
	cli.mailSvc = newMailService(conf, os.Stderr)

	if err := cli.run(args); err != nil {
		if err != errHelp {
			logger.Error("command failed", err)
		}
		logger.Close()
		if cli.db != nil {
			_ = cli.db.Close()
		}
		os.Exit(1)
	}
}

// newMailService prints mails to console in DEV and TEST or without a SendGrid key.
func newMailService(conf *core.Config, console io.Writer) core.EmailService {
	if conf.Env == "DEV" || conf.Env == "TEST" || conf.SendgridAPIKey == "" {
		return emailsvc.NewConsoleService(console, conf)
	}
	return emailsvc.NewSendgridService(conf)
}

func errAndDie(err error) {
	if err != nil {
		stdLogger.Fatalf("%+v", err)
	}
}
