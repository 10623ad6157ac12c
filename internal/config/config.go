package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Jira      JiraConfig      `yaml:"jira"`
	Mail      MailConfig      `yaml:"mail"`
	Directory DirectoryConfig `yaml:"directory"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// JiraConfig contains the issue tracker connection and query settings
type JiraConfig struct {
	BaseURL  string `yaml:"base_url"`
	Email    string `yaml:"email"`
	APIToken string `yaml:"api_token"`

	Project    string `yaml:"project"`
	IssueType  string `yaml:"issue_type"`
	MaxResults int    `yaml:"max_results"`

	// UpdateTickets controls whether successfully notified tickets are
	// transitioned and assigned back on the tracker.
	UpdateTickets  bool   `yaml:"update_tickets"`
	TransitionName string `yaml:"transition_name"`

	// Custom field IDs differ per Jira instance; the defaults match the
	// HPC cluster project this tool was written for.
	FieldFullName      string `yaml:"field_full_name"`
	FieldPIRG          string `yaml:"field_pirg"`
	FieldDuckID        string `yaml:"field_duck_id"`
	FieldJustification string `yaml:"field_justification"`
}

// MailConfig contains outbound email settings
type MailConfig struct {
	Provider string     `yaml:"provider"` // "smtp" or "sendgrid"
	SMTP     SMTPConfig `yaml:"smtp"`

	SendGridAPIKey string `yaml:"sendgrid_api_key"`

	From     string `yaml:"from"`
	FromName string `yaml:"from_name"`
	CC       string `yaml:"cc"`
}

// SMTPConfig contains SMTP transport settings
type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

// DirectoryConfig points at the PIRG approver mapping source
type DirectoryConfig struct {
	MappingFile string `yaml:"mapping_file"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ProcessTickets string `yaml:"process_tickets"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Jira credentials; the legacy variable names predate this tool and
	// are kept so existing cron environments keep working.
	if val := os.Getenv("JIRA_API_EMAIL"); val != "" {
		c.Jira.Email = val
	} else if val := os.Getenv("UPDATE_JIRA_PIRG_API_EMAIL"); val != "" {
		c.Jira.Email = val
	}
	if val := os.Getenv("JIRA_API_TOKEN"); val != "" {
		c.Jira.APIToken = val
	} else if val := os.Getenv("UPDATE_JIRA_PIRG_API_TOKEN"); val != "" {
		c.Jira.APIToken = val
	}
	if val := os.Getenv("JIRA_BASE_URL"); val != "" {
		c.Jira.BaseURL = val
	}
	if val := os.Getenv("JIRA_PROJECT"); val != "" {
		c.Jira.Project = val
	}

	// SMTP
	if val := os.Getenv("SMTP_HOST"); val != "" {
		c.Mail.SMTP.Host = val
	}
	if val := os.Getenv("SMTP_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Mail.SMTP.Port)
	}
	if val := os.Getenv("SMTP_USER"); val != "" {
		c.Mail.SMTP.User = val
	}
	if val := os.Getenv("SMTP_PASSWORD"); val != "" {
		c.Mail.SMTP.Password = val
	}
	if val := os.Getenv("SMTP_FROM"); val != "" {
		c.Mail.From = val
	}
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Mail.SendGridAPIKey = val
	}

	// Directory
	if val := os.Getenv("PIRG_MAPPING_FILE"); val != "" {
		c.Directory.MappingFile = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Jira validation
	if c.Jira.BaseURL == "" {
		return fmt.Errorf("jira base URL is required")
	}
	if c.Jira.Email == "" {
		return fmt.Errorf("jira API email is required")
	}
	if c.Jira.APIToken == "" {
		return fmt.Errorf("jira API token is required")
	}

	// Jira defaults
	if c.Jira.Project == "" {
		c.Jira.Project = "TCP"
	}
	if c.Jira.IssueType == "" {
		c.Jira.IssueType = "Account Request"
	}
	if c.Jira.MaxResults <= 0 {
		c.Jira.MaxResults = 50
	}
	if c.Jira.TransitionName == "" {
		c.Jira.TransitionName = "Waiting for customer"
	}
	if c.Jira.FieldFullName == "" {
		c.Jira.FieldFullName = "customfield_10400"
	}
	if c.Jira.FieldPIRG == "" {
		c.Jira.FieldPIRG = "customfield_10401"
	}
	if c.Jira.FieldDuckID == "" {
		c.Jira.FieldDuckID = "customfield_10403"
	}

	// Mail validation
	if c.Mail.Provider == "" {
		c.Mail.Provider = "smtp"
	}
	switch c.Mail.Provider {
	case "smtp":
		if c.Mail.SMTP.Host == "" {
			return fmt.Errorf("SMTP host is required")
		}
		if c.Mail.SMTP.Port <= 0 || c.Mail.SMTP.Port > 65535 {
			return fmt.Errorf("invalid SMTP port: %d", c.Mail.SMTP.Port)
		}
	case "sendgrid":
		if c.Mail.SendGridAPIKey == "" {
			return fmt.Errorf("sendgrid API key is required")
		}
	default:
		return fmt.Errorf("unknown mail provider: %q", c.Mail.Provider)
	}
	if c.Mail.From == "" {
		return fmt.Errorf("mail from address is required")
	}

	// Directory validation
	if c.Directory.MappingFile == "" {
		return fmt.Errorf("PIRG mapping file is required")
	}

	// Scheduler defaults
	if c.Scheduler.ProcessTickets == "" {
		c.Scheduler.ProcessTickets = "0 0 9 * * *" // 9 AM UTC daily
	}

	return nil
}

// FetchFields returns the Jira field list requested on searches
func (c *JiraConfig) FetchFields() []string {
	fields := []string{"summary", "status", "reporter", "created",
		c.FieldFullName, c.FieldPIRG, c.FieldDuckID}
	if c.FieldJustification != "" {
		fields = append(fields, c.FieldJustification)
	}
	return fields
}

// DefaultJQL returns the JQL query selecting open unassigned account requests
func (c *JiraConfig) DefaultJQL() string {
	return fmt.Sprintf(
		"project = %s AND issuetype = %q AND status = \"Open\" AND assignee = EMPTY",
		c.Project, c.IssueType,
	)
}
