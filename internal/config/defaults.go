package config

import (
	"github.com/spf13/viper"

	"github.com/imishinist/agent-metrics/internal/emf"
	"github.com/imishinist/agent-metrics/internal/sink"
)

// EnvPrefix prefixes every environment variable read through viper.
const EnvPrefix = "AGENT_METRICS"

// SetDefaults registers environment bindings and default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.BindEnv("databricks_host", "DATABRICKS_HOST")
	v.BindEnv("databricks_token", "DATABRICKS_TOKEN")
	v.BindEnv("tracking_uri", EnvPrefix+"_TRACKING_URI", "MLFLOW_TRACKING_URI")
	v.BindEnv("run_id", EnvPrefix+"_RUN_ID", "MLFLOW_RUN_ID")

	v.SetDefault("sink_path", sink.DefaultPath)
	v.SetDefault("agent_name", emf.DefaultAgentName)
	v.SetDefault("namespace", emf.DefaultNamespace)
	v.SetDefault("log_group_name", emf.DefaultLogGroupName)
	v.SetDefault("log_level", "info")
	v.SetDefault("watch_debounce", "500ms")
	v.SetDefault("tracking_uri", "http://localhost:5000")
}
