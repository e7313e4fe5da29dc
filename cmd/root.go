package cmd

import (
	"path/filepath"

	zlogger "github.com/0chain/s3mgrt/logger"
	"github.com/0chain/s3mgrt/util"
	"github.com/spf13/cobra"
)

var (
	cfgFile, configDir, logFile, logLevel string
	bSilent                               bool

	rootCmd = &cobra.Command{
		Use:   "s3mgrt",
		Short: "s3mgrt copies every object of one bucket into another bucket",
		Long: `s3mgrt copies objects between S3 compatible buckets, possibly on different
endpoints. Every copied key is appended to a ledger file, so an interrupted
migration picks up where it stopped when it is run again.`,
		SilenceUsage: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&configDir, "configDir", util.GetConfigDir(), "configuration directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "cmdlog.log", "log file, relative to the configuration directory unless absolute")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&bSilent, "silent", false, "Do not show logs on the console (shown by default)")
}

func Execute() error {
	defer zlogger.Sync()
	return rootCmd.Execute()
}

func initConfig() {
	zlogger.SetLogFile(inConfigDir(logFile), !bSilent)
	if err := zlogger.SetLevel(logLevel); err != nil {
		zlogger.Logger.Warn("Invalid log level ", logLevel, ", keeping debug")
	}
}

// inConfigDir resolves name against the configuration directory unless it is
// already absolute.
func inConfigDir(name string) string {
	if expanded, err := util.ExpandPath(name); err == nil {
		name = expanded
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(configDir, name)
}
