package commands

import (
	"io"
	"os"

	"github.com/mosaicnetworks/gossamer/src/broadcast"
	"github.com/mosaicnetworks/gossamer/src/config"
	"github.com/mosaicnetworks/gossamer/src/echo"
	"github.com/mosaicnetworks/gossamer/src/kafka"
	"github.com/mosaicnetworks/gossamer/src/node"
	"github.com/mosaicnetworks/gossamer/src/service"
	"github.com/mosaicnetworks/gossamer/src/telemetry"
	"github.com/mosaicnetworks/gossamer/src/txn"
	"github.com/mosaicnetworks/gossamer/src/uniqueids"
	"github.com/mosaicnetworks/gossamer/src/version"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// kindFactory builds a node.Kind once the configuration is loaded.
type kindFactory func(conf *config.Config) node.Kind

// NewKindCmds returns one command per node kind.
func NewKindCmds() []*cobra.Command {
	broadcastCmd := newKindCmd("broadcast", "Run a gossip broadcast node",
		func(conf *config.Config) node.Kind { return broadcast.NewKind(conf.Broadcast()) })
	AddBroadcastFlags(broadcastCmd)

	return []*cobra.Command{
		newKindCmd("echo", "Run an echo node",
			func(*config.Config) node.Kind { return echo.NewKind() }),
		newKindCmd("unique-ids", "Run a unique id generator node",
			func(*config.Config) node.Kind { return uniqueids.NewKind() }),
		broadcastCmd,
		newKindCmd("kafka", "Run a replicated log node",
			func(*config.Config) node.Kind { return kafka.NewKind() }),
		newKindCmd("txn", "Run a transactional key-value node",
			func(*config.Config) node.Kind { return txn.NewKind() }),
	}
}

func newKindCmd(use, short string, factory kindFactory) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		Args:    cobra.NoArgs,
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNode(factory(_config), os.Stdin, os.Stdout)
		},
	}
}

/*******************************************************************************
* RUN
*******************************************************************************/

func runNode(kind node.Kind, in io.Reader, out io.Writer) error {
	logger := _config.Logger()

	telemetry.SetBuildInfo(version.Version)

	runner := node.NewRunner(kind, in, out, logger)

	if _config.ServiceAddr != "" {
		serviceServer := service.NewService(_config.ServiceAddr, runner, logger.WithField("component", "service"))
		go serviceServer.Serve()
	}

	if err := runner.Run(); err != nil {
		logger.WithError(err).Error("Node failed")
		return err
	}

	return nil
}

/*******************************************************************************
* CONFIG
*******************************************************************************/

// AddBroadcastFlags adds the flags specific to broadcast nodes
func AddBroadcastFlags(cmd *cobra.Command) {
	cmd.Flags().Duration("gossip-interval", _config.GossipInterval, "Time between gossips")
	cmd.Flags().Int("redundancy", _config.Redundancy, "Percentage of new values sent again as known values")
	cmd.Flags().Int64("seed", _config.Seed, "Seed of the gossip sampling (0 uses the clock)")
}

func loadConfig(cmd *cobra.Command, args []string) error {

	configFile, err := bindFlagsLoadViper(cmd)
	if err != nil {
		return err
	}

	if configFile != "" {
		_config.Logger().Debugf("Using config file: %s", configFile)
	} else {
		_config.Logger().Debugf("No config file found in: %s", _config.DataDir)
	}

	_config.Logger().WithFields(logrus.Fields{
		"kind":            cmd.Name(),
		"version":         version.Version,
		"datadir":         _config.DataDir,
		"log":             _config.LogLevel,
		"log-file":        _config.LogFile,
		"gossip-interval": _config.GossipInterval,
		"redundancy":      _config.Redundancy,
		"seed":            _config.Seed,
		"service-listen":  _config.ServiceAddr,
	}).Debug("RUN")

	return nil
}
