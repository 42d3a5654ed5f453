package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fivetwenty-io/thriftdb/internal/constants"
	"github.com/fivetwenty-io/thriftdb/pkg/thriftdb"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration file.
type Config struct {
	URL      string `json:"url,omitempty"      yaml:"url,omitempty"`
	Username string `json:"user,omitempty"     yaml:"user,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	Output   string `json:"output,omitempty"   yaml:"output,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the service URL, credentials and output format used by the CLI",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration with the password masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			if config.Password != "" {
				config.Password = constants.MaskedSecret
			}

			return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), config, func(table *tablewriter.Table) error {
				table.Header("Property", "Value")

				rows := [][]string{
					{"URL", formatConfigValue(config.URL, thriftdb.DefaultBaseURL)},
					{"User", formatConfigValue(config.Username, constants.NotAvailable)},
					{"Password", formatConfigValue(config.Password, constants.NotAvailable)},
					{"Output", formatConfigValue(config.Output, constants.FormatTable)},
				}

				for _, row := range rows {
					if err := table.Append(row[0], row[1]); err != nil {
						return err
					}
				}

				return nil
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set one of url, user, password or output in the configuration file",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			config := loadConfig()

			err := setConfigValue(config, key, value)
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			viper.Set(key, value)

			if key == "password" {
				value = constants.MaskedSecret
			}

			return outputConfigUpdateResult(cmd, "set", key, value)
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove one of url, user, password or output from the configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			err := setConfigValue(config, key, "")
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			viper.Set(key, "")

			return outputConfigUpdateResult(cmd, "unset", key, "")
		},
	}
}

func loadConfig() *Config {
	return &Config{
		URL:      viper.GetString("url"),
		Username: viper.GetString("user"),
		Password: viper.GetString("password"),
		Output:   viper.GetString("output"),
	}
}

func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "url":
		if value != "" {
			if _, err := thriftdb.New(&thriftdb.Config{BaseURL: value}); err != nil {
				return err
			}
		}

		config.URL = value
	case "user":
		config.Username = value
	case "password":
		config.Password = value
	case "output":
		if value != "" {
			if err := validateOutput(value); err != nil {
				return err
			}
		}

		config.Output = value
	default:
		return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
	}

	return nil
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, constants.ConfigDirName, constants.ConfigFileName+"."+constants.ConfigFileType), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func formatConfigValue(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

func outputConfigUpdateResult(cmd *cobra.Command, action, key, value string) error {
	result := map[string]string{
		"action": action,
		"key":    key,
	}
	if value != "" {
		result["value"] = value
	}

	return writeOutput(cmd.OutOrStdout(), viper.GetString("output"), result, func(table *tablewriter.Table) error {
		table.Header("Action", "Key", "Value")

		return table.Append(action, key, formatConfigValue(value, constants.NotAvailable))
	})
}
