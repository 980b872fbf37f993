package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rileyhilliard/scout/internal/config"
	"github.com/rileyhilliard/scout/internal/errors"
)

var initForce bool

// initCmd creates a starter servers.yaml in the current directory.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter servers.yaml",
	Long: `Write an example servers.yaml into the current directory. Edit the
server list to match your fleet; pattern entries like "orca{01..12}"
expand to a numeric range of hosts.

Examples:
  scout init
  scout init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfig(initForce)
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func initConfig(force bool) error {
	path := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(path); err == nil && !force {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Config file already exists: %s", path),
			"Use --force to overwrite")
	}

	data, err := yaml.Marshal(starterConfig())
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to render starter config",
			"This is a bug; please report it")
	}

	header := []byte("# scout fleet configuration\n" +
		"# Pattern entries expand to a numeric range: orca{01..03} -> orca01, orca02, orca03.\n" +
		"# Mark GPU machines with has_gpu: true to enable GPU probing.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to write "+path,
			"Check directory permissions")
	}

	if jsonFlag {
		return WriteJSONSuccess(os.Stdout, map[string]string{"path": path})
	}
	fmt.Printf("Created %s. Edit the server list to match your fleet.\n", path)
	return nil
}

// starterFile mirrors the config schema with human-readable durations,
// so the generated YAML says "10s" rather than raw nanoseconds.
type starterFile struct {
	Servers []config.ServerDef `yaml:"servers"`
	SSH     map[string]string  `yaml:"ssh"`
	Cache   map[string]string  `yaml:"cache"`
	Checker map[string]int     `yaml:"checker"`
}

// starterConfig is the example config written by 'scout init'. The
// commands section is omitted on purpose; the built-in defaults cover
// standard Linux hosts with nvidia-smi.
func starterConfig() starterFile {
	return starterFile{
		Servers: []config.ServerDef{
			{Name: "workstation", Host: "workstation.local"},
			{Pattern: "orca{01..03}", HasGPU: true},
		},
		SSH:     map[string]string{"timeout": "10s"},
		Cache:   map[string]string{"ttl": "30s"},
		Checker: map[string]int{"workers": 10},
	}
}
