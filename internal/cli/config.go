package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ariel-frischer/commitwit/internal/config"
	clierrors "github.com/ariel-frischer/commitwit/internal/errors"
	"github.com/ariel-frischer/commitwit/internal/output"
)

var (
	configInitForce bool
	configInitUser  bool
	configDryRun    bool
	configRemove    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage commitwit configuration",
	Long: `Manage commitwit configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (COMMITWIT_*, "__" separates nested keys)
  2. Project config (.commitwit.yml at the repository root, or --config)
  3. User config (~/.config/commitwit/config.yml)
  4. Built-in defaults`,
	Example: `  # Create .commitwit.yml with every option documented
  commitwit config init

  # Show the effective configuration
  commitwit config show

  # List every key and its environment variable
  commitwit config keys`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented config file",
	Long: `Create .commitwit.yml at the repository root (or the --config path)
with every option and its default value. An existing file is kept unless
--force is given.`,
	Args:         argsRange(0, 0),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd, configInitUser, configInitForce)
	},
}

var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Print the effective configuration as YAML",
	Args:         argsRange(0, 0),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

var configKeysCmd = &cobra.Command{
	Use:          "keys [key]",
	Short:        "List known configuration keys",
	Args:         argsRange(0, 1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigKeys(cmd, args)
	},
}

var configMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert .commitwit.json to .commitwit.yml",
	Long: `Convert a legacy .commitwit.json project config to .commitwit.yml,
keeping key order. An existing YAML file is never overwritten. With
--remove the JSON file is renamed to .commitwit.json.bak afterwards.`,
	Args:         argsRange(0, 0),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigMigrate(cmd, configDryRun, configRemove)
	},
}

func init() {
	configCmd.GroupID = GroupConfiguration
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configKeysCmd, configMigrateCmd)

	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
	configInitCmd.Flags().BoolVar(&configInitUser, "user", false, "Write the user config instead of the project config")

	configMigrateCmd.Flags().BoolVar(&configDryRun, "dry-run", false, "Show what would be done without writing")
	configMigrateCmd.Flags().BoolVar(&configRemove, "remove", false, "Rename the JSON file to .bak after migrating")
}

func runConfigInit(cmd *cobra.Command, user, force bool) error {
	path, err := initTargetPath(user)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		output.PrintWarning(cmd.ErrOrStderr(), "%s already exists; use --force to overwrite it", path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Write, "creating config directory")
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Write, "writing config file")
	}

	output.PrintSuccess(cmd.ErrOrStderr(), "Created", path)
	return nil
}

func initTargetPath(user bool) (string, error) {
	switch {
	case user:
		path, err := config.UserConfigPath()
		if err != nil {
			return "", clierrors.WrapWithMessage(err, clierrors.Configuration, "locating user config directory")
		}
		return path, nil
	case configFlag != "":
		return configFlag, nil
	default:
		return config.ProjectConfigPath(configRoot()), nil
	}
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, configRoot())
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding configuration: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigKeys(cmd *cobra.Command, args []string) error {
	keys := config.SortedKeys()
	if len(args) == 1 {
		schema, err := config.GetKeySchema(args[0])
		if err != nil {
			return clierrors.NewArgumentError(err.Error(), "List valid keys with: commitwit config keys")
		}
		keys = []config.ConfigKeySchema{schema}
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tTYPE\tENV\tDESCRIPTION")
	for _, k := range keys {
		typ := k.Type.String()
		if len(k.AllowedValues) > 0 {
			typ += " (" + strings.Join(k.AllowedValues, "|") + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", k.Path, typ, k.EnvName(), k.Description)
	}
	return tw.Flush()
}

func runConfigMigrate(cmd *cobra.Command, dryRun, remove bool) error {
	root := configRoot()
	result, err := config.MigrateProjectConfig(root, dryRun)
	if err != nil {
		return clierrors.WrapWithMessage(err, clierrors.Configuration, "migrating config")
	}

	errOut := cmd.ErrOrStderr()
	if !result.Success {
		output.PrintInfo(errOut, "%s", result.Message)
		return nil
	}
	output.PrintSuccess(errOut, result.Message)

	if remove {
		if err := config.RemoveLegacyConfig(result.SourcePath, dryRun); err != nil {
			return clierrors.WrapWithMessage(err, clierrors.Write, "removing legacy config")
		}
		if !dryRun {
			output.PrintSuccess(errOut, "Renamed legacy config to", result.SourcePath+".bak")
		}
	}
	return nil
}
