package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Databricks domain suffixes for URL detection
var databricksDomains = []string{
	".cloud.databricks.com",
	".azuredatabricks.net",
	".gcp.databricks.com",
}

type Config struct {
	SinkPath      string
	TextfilePath  string
	AgentName     string
	Namespace     string
	LogGroupName  string
	LogLevel      string
	WatchDebounce time.Duration

	TrackingURI     string
	RunID           string
	DatabricksHost  string
	DatabricksToken string
}

func New() *Config {
	return &Config{
		SinkPath:        viper.GetString("sink_path"),
		TextfilePath:    viper.GetString("textfile_path"),
		AgentName:       viper.GetString("agent_name"),
		Namespace:       viper.GetString("namespace"),
		LogGroupName:    viper.GetString("log_group_name"),
		LogLevel:        viper.GetString("log_level"),
		WatchDebounce:   viper.GetDuration("watch_debounce"),
		TrackingURI:     viper.GetString("tracking_uri"),
		RunID:           viper.GetString("run_id"),
		DatabricksHost:  viper.GetString("databricks_host"),
		DatabricksToken: viper.GetString("databricks_token"),
	}
}

func (c *Config) Validate() error {
	if c.SinkPath == "" {
		return fmt.Errorf("sink path is required")
	}
	if c.AgentName == "" {
		return fmt.Errorf("agent name is required")
	}
	if c.Namespace == "" {
		return fmt.Errorf("metrics namespace is required")
	}
	if c.LogGroupName == "" {
		return fmt.Errorf("log group name is required")
	}
	if c.WatchDebounce <= 0 {
		return fmt.Errorf("invalid watch debounce: %s (must be positive)", c.WatchDebounce)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

// ValidateTracking checks the settings needed to publish to MLflow.
func (c *Config) ValidateTracking() error {
	if c.TrackingURI == "" {
		return fmt.Errorf("tracking URI is required")
	}
	return nil
}

// IsDatabricks checks if the tracking URI points to Databricks
func (c *Config) IsDatabricks() bool {
	if c.TrackingURI == "databricks" {
		return true
	}

	if strings.HasPrefix(c.TrackingURI, "databricks://") {
		return true
	}

	if strings.HasPrefix(c.TrackingURI, "https://") {
		return isDatabricksHost(extractHostFromURL(c.TrackingURI))
	}

	return false
}

func extractHostFromURL(url string) string {
	host := strings.TrimPrefix(url, "https://")
	if idx := strings.Index(host, "/"); idx != -1 {
		host = host[:idx]
	}
	return host
}

func isDatabricksHost(host string) bool {
	for _, domain := range databricksDomains {
		if strings.HasSuffix(host, domain) {
			return true
		}
	}
	return false
}

// GetDatabricksProfile extracts the profile name from databricks://{profile} URI
func (c *Config) GetDatabricksProfile() string {
	if !strings.HasPrefix(c.TrackingURI, "databricks://") {
		return ""
	}

	profile := strings.TrimPrefix(c.TrackingURI, "databricks://")
	if idx := strings.Index(profile, "/"); idx != -1 {
		profile = profile[:idx]
	}
	return profile
}
