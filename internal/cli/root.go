package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath string
	debugLog   bool
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:          "soulgatchi",
	Short:        "A virtual pet nurtured by daily devotion",
	Long:         "SoulGatchi keeps a pet alive on remembrance and prayer. Run `soulgatchi serve`, then care for it from any terminal.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.soulgatchi/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugLog, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&serverURL, "url", "", "Server URL (default $SOULGATCHI_URL or http://127.0.0.1:37778)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(ritualCmd)
	rootCmd.AddCommand(prayCmd)
	rootCmd.AddCommand(restCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(dailyResetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(livesCmd)
}

// newLogger builds a console logger on stderr. Debug enables decay and age
// tick logging.
func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}
