package commands

import (
	"strings"

	"github.com/mosaicnetworks/gossamer/src/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	_config = config.NewDefaultConfig()
)

func init() {
	AddRootFlags(RootCmd)
}

//AddRootFlags adds the flags shared by every node kind
func AddRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("datadir", _config.DataDir, "Directory searched for gossamer.toml")
	cmd.PersistentFlags().String("log", _config.LogLevel, "debug, info, warn, error, fatal, panic")
	cmd.PersistentFlags().String("log-file", _config.LogFile, "Also write logs to this file")
	cmd.PersistentFlags().StringP("service-listen", "s", _config.ServiceAddr, "Listen IP:Port for HTTP service (disabled when empty)")
}

// RootCmd is the root command for Gossamer
var RootCmd = &cobra.Command{
	Use:   "gossamer",
	Short: "Nodes for distributed systems exercises, over stdin/stdout",
	Long: `Gossamer runs a single node of a simulated cluster. The node reads one
JSON message per line on stdin and writes one JSON message per line on
stdout. Logs go to stderr.`,
	TraverseChildren: true,
}

// Bind all flags and read the config into viper. It returns the path of the
// config file used, if any.
func bindFlagsLoadViper(cmd *cobra.Command) (string, error) {
	// Register flags with viper. Include flags from this command and all other
	// persistent flags from the parent
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return "", err
	}

	// GOSSAMER_GOSSIP_INTERVAL overrides gossip-interval, etc.
	viper.SetEnvPrefix("gossamer")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// first unmarshal to read from CLI flags and environment
	if err := viper.Unmarshal(_config); err != nil {
		return "", err
	}

	// look for config file in [datadir]/gossamer.toml (.json, .yaml also work)
	viper.SetConfigName("gossamer")      // name of config file (without extension)
	viper.AddConfigPath(_config.DataDir) // search root directory

	// If a config file is found, read it in. The logger is not built yet, as
	// the file may change its settings.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return "", nil
		}
		return "", err
	}

	// second unmarshal to read from config file
	return viper.ConfigFileUsed(), viper.Unmarshal(_config)
}
