package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/imishinist/agent-metrics/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "agent-metrics",
	Short: "Agent run metrics recorder",
	Long: `A command line tool that turns agent execution summaries into
CloudWatch Embedded Metric Format records and appends them to a metrics file.
Records can also be exported as a Prometheus textfile or logged to MLflow.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("sink", "", "EMF metrics file to append to (overrides AGENT_METRICS_SINK_PATH)")
	rootCmd.PersistentFlags().String("agent-name", "", "Agent name dimension (overrides AGENT_METRICS_AGENT_NAME)")
	rootCmd.PersistentFlags().String("namespace", "", "CloudWatch metrics namespace")
	rootCmd.PersistentFlags().String("log-group", "", "CloudWatch log group name")
	rootCmd.PersistentFlags().String("textfile", "", "Also write a Prometheus textfile snapshot to this path")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug/info/warn/error)")
	rootCmd.PersistentFlags().String("tracking-uri", "", "MLflow tracking URI (overrides MLFLOW_TRACKING_URI)")
	viper.BindPFlag("sink_path", rootCmd.PersistentFlags().Lookup("sink"))
	viper.BindPFlag("agent_name", rootCmd.PersistentFlags().Lookup("agent-name"))
	viper.BindPFlag("namespace", rootCmd.PersistentFlags().Lookup("namespace"))
	viper.BindPFlag("log_group_name", rootCmd.PersistentFlags().Lookup("log-group"))
	viper.BindPFlag("textfile_path", rootCmd.PersistentFlags().Lookup("textfile"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("tracking_uri", rootCmd.PersistentFlags().Lookup("tracking-uri"))
}

func initConfig() {
	// A missing .env file is fine
	_ = godotenv.Load()

	config.SetDefaults(viper.GetViper())
}

func loadConfig() (*config.Config, error) {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
