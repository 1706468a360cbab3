package commands

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mosaicnetworks/gossamer/src/config"
	"github.com/mosaicnetworks/gossamer/src/echo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// findCmd returns the kind command called name, with its flags parsed from
// args.
func findCmd(t *testing.T, name string, args ...string) *cobra.Command {
	t.Helper()

	viper.Reset()
	_config = config.NewTestConfig(t, logrus.DebugLevel)

	root := &cobra.Command{Use: "gossamer"}
	AddRootFlags(root)
	for _, c := range NewKindCmds() {
		root.AddCommand(c)
	}

	cmd, rest, err := root.Find(append([]string{name}, args...))
	require.NoError(t, err)
	require.NoError(t, cmd.ParseFlags(rest))
	return cmd
}

func TestKindCommands(t *testing.T) {
	names := []string{}
	for _, c := range NewKindCmds() {
		names = append(names, c.Name())
	}
	require.Equal(t, []string{"echo", "unique-ids", "broadcast", "kafka", "txn"}, names)
}

func TestDefaults(t *testing.T) {
	cmd := findCmd(t, "broadcast", "--datadir", "")
	require.NoError(t, loadConfig(cmd, nil))

	require.Equal(t, 100*time.Millisecond, _config.GossipInterval)
	require.Equal(t, 10, _config.Redundancy)
	require.Equal(t, "", _config.ServiceAddr)
}

func TestFlagsOverrideDefaults(t *testing.T) {
	cmd := findCmd(t, "broadcast", "--datadir", "", "--gossip-interval", "20ms", "--redundancy", "30", "--seed", "9")
	require.NoError(t, loadConfig(cmd, nil))

	require.Equal(t, 20*time.Millisecond, _config.GossipInterval)
	require.Equal(t, 30, _config.Redundancy)
	require.Equal(t, int64(9), _config.Seed)
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("GOSSAMER_REDUNDANCY", "25")
	t.Setenv("GOSSAMER_GOSSIP_INTERVAL", "1s")

	cmd := findCmd(t, "broadcast", "--datadir", "")
	require.NoError(t, loadConfig(cmd, nil))

	require.Equal(t, 25, _config.Redundancy)
	require.Equal(t, time.Second, _config.GossipInterval)
}

func TestConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "gossamer-cmd")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	content := "redundancy: 50\ngossip-interval: 250ms\nservice-listen: 127.0.0.1:9999\n"
	require.NoError(t, ioutil.WriteFile(filepath.Join(dir, "gossamer.yaml"), []byte(content), 0644))

	cmd := findCmd(t, "broadcast", "--datadir", dir, "--redundancy", "40")
	require.NoError(t, loadConfig(cmd, nil))

	require.Equal(t, 40, _config.Redundancy, "flags win over the config file")
	require.Equal(t, 250*time.Millisecond, _config.GossipInterval)
	require.Equal(t, "127.0.0.1:9999", _config.ServiceAddr)
}

func TestRunNodeFailsOnBadHandshake(t *testing.T) {
	findCmd(t, "echo")

	out := &bytes.Buffer{}
	in := strings.NewReader(`{"src":"c0","dest":"n1","body":{"type":"echo","msg_id":1,"echo":"x"}}` + "\n")

	require.Error(t, runNode(echo.NewKind(), in, out))
	require.Empty(t, out.String(), "nothing is written before init")
}
