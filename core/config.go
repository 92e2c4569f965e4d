package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kat-co/vala"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName  string
		Env      string // DEV (local; default), TEST, QA, PROD
		Build    string
		Debug    bool
		TestMode bool

		DefaultFromEmail mail.Address
		SendgridAPIKey   string
		RollbarToken     string

		Database DatabaseConfig
		Sheet    SheetConfig
	}

	DatabaseConfig struct {
		URI                string
		Name               string
		StudentsCollection string
		ScanLogsCollection string

		ServerSelectionTimeout time.Duration
		ConnectTimeout         time.Duration
		SocketTimeout          time.Duration
	}

	// SheetConfig points at the spreadsheet mirror of the roster.
	// An empty ID disables sheet sync altogether.
	SheetConfig struct {
		ID              string
		Range           string
		CredentialsJSON string // service account credentials as a JSON blob
		CredentialsFile string // used when CredentialsJSON is empty
	}
)

// Enabled reports whether the sheet mirror is configured.
func (c SheetConfig) Enabled() bool { return c.ID != "" }

// Name returns the sheet (tab) name part of Range, eg "Sheet1" for "Sheet1!A:F".
func (c SheetConfig) Name() string {
	if i := strings.Index(c.Range, "!"); i >= 0 {
		return c.Range[:i]
	}
	return c.Range
}

// NewConfig loads the Config from the environment, with defaults applied and
// an optional config/.env.<env> file loaded first.
func NewConfig() (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Checkpoint")
	conf.SetDefault("build", "dev")
	conf.SetDefault("defaultFromEmail", "noreply@localhost")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("mongodbUrl", "mongodb://localhost:27017")
	conf.SetDefault("databaseName", "checkpoint")
	conf.SetDefault("studentsCollection", "students")
	conf.SetDefault("scanLogsCollection", "scan_logs")
	conf.SetDefault("serverSelectionTimeout", 5*time.Second)
	conf.SetDefault("connectTimeout", 10*time.Second)
	conf.SetDefault("socketTimeout", 10*time.Second)
	conf.SetDefault("googleSheetId", "")
	conf.SetDefault("googleSheetRange", "Sheet1!A:F")
	conf.SetDefault("googleCredentialsJson", "")
	conf.SetDefault("googleCredentialsFile", "credentials.json")

	env := os.Getenv("ENV")
	var testMode bool
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		testMode = true
	}
	conf.SetEnvPrefix(env)

	// load config/.env.<env> if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	}
	conf.AutomaticEnv()

	c := &Config{
		AppName:  conf.GetString("appName"),
		Env:      env,
		Build:    conf.GetString("build"),
		Debug:    conf.GetBool("debug"),
		TestMode: testMode,
		DefaultFromEmail: mail.Address{
			Name:    conf.GetString("appName"),
			Address: conf.GetString("defaultFromEmail"),
		},
		SendgridAPIKey: conf.GetString("sendgridApiKey"),
		RollbarToken:   conf.GetString("rollbarToken"),
		Database: DatabaseConfig{
			URI:                    conf.GetString("mongodbUrl"),
			Name:                   conf.GetString("databaseName"),
			StudentsCollection:     conf.GetString("studentsCollection"),
			ScanLogsCollection:     conf.GetString("scanLogsCollection"),
			ServerSelectionTimeout: conf.GetDuration("serverSelectionTimeout"),
			ConnectTimeout:         conf.GetDuration("connectTimeout"),
			SocketTimeout:          conf.GetDuration("socketTimeout"),
		},
		Sheet: SheetConfig{
			ID:              conf.GetString("googleSheetId"),
			Range:           conf.GetString("googleSheetRange"),
			CredentialsJSON: conf.GetString("googleCredentialsJson"),
			CredentialsFile: conf.GetString("googleCredentialsFile"),
		},
	}

	err := vala.BeginValidation().Validate(
		vala.StringNotEmpty(c.Database.URI, "mongodbUrl"),
		vala.StringNotEmpty(c.Database.Name, "databaseName"),
		vala.StringNotEmpty(c.Database.StudentsCollection, "studentsCollection"),
		vala.StringNotEmpty(c.Database.ScanLogsCollection, "scanLogsCollection"),
		vala.StringNotEmpty(c.Sheet.Range, "googleSheetRange"),
	).Check()
	if err != nil {
		return nil, err
	}
	return c, nil
}
