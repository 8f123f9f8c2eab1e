package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/sethvargo/go-envconfig"
	"sigs.k8s.io/yaml"
)

const (
	ModeServe    = "serve"
	ModeAutomate = "automate"
)

type MainConfig struct {
	ListenPort int    `env:"LISTEN_PORT, default=8000" json:"listen_port,omitempty"`
	SiteURL    string `env:"SITE_URL, default=https://supermega.dev" json:"site_url,omitempty"`
	BookingURL string `env:"BOOKING_URL, default=https://calendar.google.com/calendar/appointments/schedules/AcZssZ0mCmwsI8H_H4t9F5K8wG3L2Mv?gv=true" json:"booking_url,omitempty"`
}

type LogConfig struct {
	Level     string `env:"LEVEL, default=info" json:"level,omitempty"`
	Format    string `env:"FORMAT, default=json" json:"format,omitempty"`
	AddSource bool   `env:"ADD_SOURCE" json:"add_source,omitempty"`
}

type GoogleConfig struct {
	ClientID          string `env:"GOOGLE_CLIENT_ID" json:"client_id,omitempty"`
	ClientSecret      string `env:"GOOGLE_CLIENT_SECRET" json:"client_secret,omitempty"`
	SheetsCredentials string `env:"GOOGLE_SHEETS_CREDENTIALS" json:"sheets_credentials,omitempty"`
	SpreadsheetID     string `env:"GOOGLE_SHEETS_SPREADSHEET_ID" json:"spreadsheet_id,omitempty"`
	SpreadsheetTitle  string `env:"GOOGLE_SHEETS_TITLE, default=Super Mega Contacts" json:"spreadsheet_title,omitempty"`
	WorksheetTitle    string `env:"GOOGLE_SHEETS_WORKSHEET, default=leads" json:"worksheet_title,omitempty"`
	CalendarID        string `env:"GOOGLE_CALENDAR_ID, default=primary" json:"calendar_id,omitempty"`
	Timezone          string `env:"GOOGLE_CALENDAR_TZ, default=America/Los_Angeles" json:"timezone,omitempty"`
}

type GitHubConfig struct {
	Token      string `env:"TOKEN" json:"token,omitempty"`
	APIURL     string `env:"API_URL, default=https://api.github.com" json:"api_url,omitempty"`
	Owner      string `env:"OWNER, default=swanhtet01" json:"owner,omitempty"`
	MainRepo   string `env:"MAIN_REPO, default=swanhtet01.github.io" json:"main_repo,omitempty"`
	ClientRepo string `env:"CLIENT_REPO, default=supermega.dev" json:"client_repo,omitempty"`
}

type SlackConfig struct {
	WebhookURL string `env:"SLACK_WEBHOOK_URL" json:"webhook_url,omitempty"`
}

type MailConfig struct {
	Host           string `env:"HOST" json:"host,omitempty"`
	Port           int    `env:"PORT, default=587" json:"port,omitempty"`
	User           string `env:"USER" json:"user,omitempty"`
	Password       string `env:"PASSWORD" json:"password,omitempty"`
	SenderAddress  string `env:"FROM, default=noreply@supermega.dev" json:"sender_address,omitempty"`
	SenderName     string `env:"FROM_NAME, default=Super Mega" json:"sender_name,omitempty"`
	RetryCount     int    `env:"RETRY_COUNT, default=3" json:"retry_count,omitempty"`
	RetryBackoffMs int    `env:"RETRY_BACKOFF_MS, default=100" json:"retry_backoff_ms,omitempty"`
}

type MonitorConfig struct {
	Interval time.Duration `env:"INTERVAL, default=5m" json:"interval,omitempty"`
}

type MaintenanceConfig struct {
	DailyCron  string `env:"DAILY_CRON, default=0 9 * * *" json:"daily_cron,omitempty"`
	HourlyCron string `env:"HOURLY_CRON, default=0 * * * *" json:"hourly_cron,omitempty"`
}

type MetricsConfig struct {
	Enable bool `env:"ENABLE" json:"enable,omitempty"`
}

type PprofConfig struct {
	Enable bool `env:"ENABLE" json:"enable,omitempty"`
}

type Config struct {
	Main        MainConfig        `env:", prefix=OPSD_" json:"main,omitempty"`
	Log         LogConfig         `env:", prefix=OPSD_LOG_" json:"log,omitempty"`
	Google      GoogleConfig      `json:"google,omitempty"`
	GitHub      GitHubConfig      `env:", prefix=OPSD_GITHUB_" json:"github,omitempty"`
	Slack       SlackConfig       `json:"slack,omitempty"`
	Mail        MailConfig        `env:", prefix=OPSD_SMTP_" json:"mail,omitempty"`
	Monitor     MonitorConfig     `env:", prefix=OPSD_MONITOR_" json:"monitor,omitempty"`
	Maintenance MaintenanceConfig `env:", prefix=OPSD_MAINT_" json:"maintenance,omitempty"`
	Metrics     MetricsConfig     `env:", prefix=OPSD_METRICS_" json:"metrics,omitempty"`
	Pprof       PprofConfig       `env:", prefix=OPSD_PPROF_" json:"pprof,omitempty"`
}

// MustEnvconfig reads the config from environment variables only.
func MustEnvconfig(mode string) *Config {
	var c Config
	if err := envconfig.Process(context.Background(), &c); err != nil {
		log.Fatalf("read config from env: %v", err)
	}
	if err := c.validate(mode); err != nil {
		log.Fatal(err)
	}
	return &c
}

// MustLoad reads the config from a JSON or YAML file; env vars fill the
// fields the file leaves unset.
func MustLoad(path, mode string) *Config {
	var c Config
	if err := envconfig.Process(context.Background(), &c); err != nil {
		log.Fatalf("read config from env: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("read config file: %v", err)
	}
	// sigs.k8s.io/yaml handles both YAML and JSON input
	if err := yaml.Unmarshal(data, &c); err != nil {
		log.Fatalf("parse config file %s: %v", path, err)
	}
	if err := c.validate(mode); err != nil {
		log.Fatal(err)
	}
	return &c
}

func (c *Config) validate(mode string) error {
	switch mode {
	case ModeServe:
		if c.Main.ListenPort <= 0 {
			return fmt.Errorf("serve: listen-port is not defined")
		}
	case ModeAutomate:
		if c.Main.SiteURL == "" {
			return fmt.Errorf("automate: site-url is not defined")
		}
		if _, err := time.LoadLocation(c.Google.Timezone); err != nil {
			return fmt.Errorf("automate: bad timezone %q: %w", c.Google.Timezone, err)
		}
	default:
		return fmt.Errorf("unexpected mode: %s", mode)
	}
	return nil
}

// HasGitHubConfigured reports whether repository provisioning may run.
func (c *Config) HasGitHubConfigured() bool {
	return c.GitHub.Token != ""
}

// HasMailConfigured reports whether a real SMTP transport is available.
// Without it the mailer degrades to log-only delivery.
func (c *Config) HasMailConfigured() bool {
	return c.Mail.Host != ""
}

// String renders the config as indented JSON with sensitive fields hidden.
func (c *Config) String() string {
	masked := *c
	masked.GitHub.Token = mask(masked.GitHub.Token)
	masked.Google.ClientSecret = mask(masked.Google.ClientSecret)
	masked.Google.SheetsCredentials = mask(masked.Google.SheetsCredentials)
	masked.Slack.WebhookURL = mask(masked.Slack.WebhookURL)
	masked.Mail.Password = mask(masked.Mail.Password)

	data, err := json.MarshalIndent(&masked, "", "  ")
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(data)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	return "*****"
}
