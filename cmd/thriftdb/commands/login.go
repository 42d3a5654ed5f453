package commands

import (
	"bufio"
	"fmt"
	"strings"
	"syscall"

	"github.com/fivetwenty-io/thriftdb/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Save ThriftDB credentials",
		Long:  "Store the basic auth username and password used for every request in the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			username := viper.GetString("user")
			if username == "" {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Username: ")

				reader := bufio.NewReader(cmd.InOrStdin())
				username, _ = reader.ReadString('\n')
				username = strings.TrimSpace(username)
			}

			if username == "" {
				return constants.ErrUsernameRequired
			}

			password := viper.GetString("password")
			if password == "" {
				_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

				bytePassword, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read password: %w", err)
				}

				password = string(bytePassword)

				_, _ = fmt.Fprintln(cmd.ErrOrStderr())
			}

			config.Username = username
			config.Password = password

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			viper.Set("user", username)
			viper.Set("password", password)

			configFile, _ := configFilePath()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Credentials for %s saved to %s\n", username, configFile)

			return nil
		},
	}
}
