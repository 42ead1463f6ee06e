package core

import (
	"net"
	"net/mail"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Login sources
const (
	LoginSourceSnapshot = "snapshot" // snapshot file only, no directory lookups
	LoginSourceDatabase = "database" // snapshot file backed by the directory database
)

type (
	Config struct {
		Env              string       `validate:"required"`
		AppName          string       `validate:"required"`
		Build            string
		Debug            bool
		TestMode         bool
		RollbarToken     string
		SendgridAPIKey   string
		DefaultFromEmail mail.Address `validate:"-"`

		Course   CourseConfig
		Database DatabaseConfig
	}

	// CourseConfig holds the static course data: who teaches, who grades and where the roster comes from.
	CourseConfig struct {
		Name              string
		InstructorNUIDs   []string `validate:"dive,nuid"`
		GraderNUIDs       []string `validate:"dive,nuid"`
		RosterFile        string   `validate:"required"`
		LoginSnapshotFile string   `validate:"required"`
		LoginSource       string   `validate:"oneof=snapshot database"`
	}

	DatabaseConfig struct {
		Engine     string
		Host       string
		Port       string
		Name       string
		User       string
		Password   string
		DisableTLS bool
	}
)

func (dbc DatabaseConfig) Address() string {
	return net.JoinHostPort(dbc.Host, dbc.Port)
}

func setDefaults(v *viper.Viper) {
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("appName", "Grading")
	v.SetDefault("build", "dev")
	v.SetDefault("defaultFromEmail", "noreply@localhost")

	v.SetDefault("course.name", "")
	v.SetDefault("course.instructorNuids", []string{})
	v.SetDefault("course.graderNuids", []string{})
	v.SetDefault("course.rosterFile", "roster.yaml")
	v.SetDefault("course.loginSnapshotFile", "logins.json")
	v.SetDefault("course.loginSource", LoginSourceSnapshot)

	v.SetDefault("database.engine", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.name", "directory")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.disableTLS", false)
}

// NewConfig loads the configuration from defaults, an optional config file, `config/.env.<env>` and the environment.
// Environment variables are prefixed with the upper-cased ENV, e.g. DEV_COURSE_GRADERNUIDS="001 002".
func NewConfig(file string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	if file == "" {
		file = v.GetString("configFile")
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config file %s", file)
		}
	}

	conf := &Config{
		Env:            env,
		AppName:        v.GetString("appName"),
		Build:          v.GetString("build"),
		Debug:          v.GetBool("debug"),
		TestMode:       v.GetBool("testMode"),
		RollbarToken:   v.GetString("rollbarToken"),
		SendgridAPIKey: v.GetString("sendgridApiKey"),
		Course: CourseConfig{
			Name:              v.GetString("course.name"),
			InstructorNUIDs:   cleanNUIDs(v.GetStringSlice("course.instructorNuids")),
			GraderNUIDs:       cleanNUIDs(v.GetStringSlice("course.graderNuids")),
			RosterFile:        v.GetString("course.rosterFile"),
			LoginSnapshotFile: v.GetString("course.loginSnapshotFile"),
			LoginSource:       CleanString(v.GetString("course.loginSource"), true /* lower */),
		},
		Database: DatabaseConfig{
			Engine:     v.GetString("database.engine"),
			Host:       v.GetString("database.host"),
			Port:       v.GetString("database.port"),
			Name:       v.GetString("database.name"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			DisableTLS: v.GetBool("database.disableTLS"),
		},
	}

	from, err := mail.ParseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		return nil, InvalidField("defaultFromEmail", err.Error())
	}
	conf.DefaultFromEmail = *from

	if err := ValidateStruct(conf); err != nil {
		return nil, err
	}
	return conf, nil
}

// cleanNUIDs accepts both list values and a single comma or space separated string.
func cleanNUIDs(raw []string) []string {
	nuids := make([]string, 0, len(raw))
	for _, r := range raw {
		for _, nuid := range strings.FieldsFunc(r, func(c rune) bool { return c == ',' || c == ' ' }) {
			if nuid = CleanString(nuid); nuid != "" {
				nuids = append(nuids, nuid)
			}
		}
	}
	return nuids
}
