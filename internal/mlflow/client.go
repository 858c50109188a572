package mlflow

import (
	"context"
	"fmt"

	"github.com/databricks/databricks-sdk-go"
	"github.com/databricks/databricks-sdk-go/service/ml"

	"github.com/imishinist/agent-metrics/internal/config"
)

// experimentsAPI is the subset of the Databricks experiments service used here.
type experimentsAPI interface {
	LogMetric(ctx context.Context, request ml.LogMetric) error
	LogParam(ctx context.Context, request ml.LogParam) error
}

// Client logs records to an MLflow tracking server or a Databricks workspace.
type Client struct {
	experiments experimentsAPI
}

// NewClient connects to Databricks when the tracking URI names it (host,
// profile, or "databricks" with DATABRICKS_HOST), and to a plain MLflow server
// otherwise.
func NewClient(cfg *config.Config) (*Client, error) {
	if err := cfg.ValidateTracking(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	var databricksConfig *databricks.Config

	if cfg.IsDatabricks() {
		databricksConfig = &databricks.Config{}

		if cfg.TrackingURI == "databricks" {
			if cfg.DatabricksHost != "" {
				databricksConfig.Host = cfg.DatabricksHost
			}
		} else if profile := cfg.GetDatabricksProfile(); profile != "" {
			databricksConfig.Profile = profile
		} else {
			databricksConfig.Host = cfg.TrackingURI
		}

		// Token overrides profile credentials
		if cfg.DatabricksToken != "" {
			databricksConfig.Token = cfg.DatabricksToken
		}

		if databricksConfig.Host == "" && databricksConfig.Profile == "" {
			return nil, fmt.Errorf("Databricks host or profile is required when using Databricks MLflow. Set DATABRICKS_HOST environment variable, use a full Databricks URL as tracking URI, or specify a profile with databricks://{profile}")
		}
	} else {
		databricksConfig = &databricks.Config{
			Host: cfg.TrackingURI,
			// Plain MLflow servers ignore auth, but the SDK requires a credential.
			Token: "dummy-token-for-regular-mlflow",
		}
	}

	w, err := databricks.NewWorkspaceClient(databricksConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create MLflow client: %w", err)
	}

	return &Client{experiments: w.Experiments}, nil
}
