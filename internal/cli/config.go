package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/coalition/pkg/config"
)

// configCommand creates the config command group.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or show the run configuration",
	}

	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configInitCommand creates the "config init" subcommand.
func (c *CLI) configInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration to a file",
		Long: `Write the default configuration to a TOML or YAML file, chosen by the
file extension. The path defaults to coalition.toml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := appName + ".toml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Default().Save(path); err != nil {
				return err
			}
			printSuccess("Wrote default configuration")
			printFile(path)
			printNextStep("Run with it", fmt.Sprintf("%s manipulate --config %s", appName, path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	return cmd
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration after applying the --config file and the
COALITION_REDIS_URL and COALITION_MONGO_URI environment variables.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if format == "" && c.configPath != "" {
				format = strings.TrimPrefix(filepath.Ext(c.configPath), ".")
			}
			switch format {
			case "", "toml":
				return toml.NewEncoder(stdout).Encode(cfg)
			case "yaml", "yml":
				enc := yaml.NewEncoder(stdout)
				enc.SetIndent(2)
				defer enc.Close()
				return enc.Encode(cfg)
			default:
				return fmt.Errorf("unknown format %q (use toml or yaml)", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: toml or yaml (default: the config file's)")
	return cmd
}
