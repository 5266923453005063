package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dirwise/fdapi/pkg/directory"
)

// newLoginCmd creates and returns a new login command
func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Verify credentials against the directory server",
		Long: `Login opens a session against the configured server to verify the
credentials, stores them in the configuration file on success, and closes
the session again. Subsequent commands open their own short-lived sessions
with the stored credentials.

Example:
  fdcli login --user fd-admin --passwd secret
  fdcli login  # uses credentials from config file`,
		RunE: runLogin,
	}

	cmd.Flags().String("user", "", "Directory user to log in as")
	cmd.Flags().String("passwd", "", "Password for authentication")
	return cmd
}

// runLogin handles the login command execution
func runLogin(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		user = cfg.User
		if user == "" {
			return fmt.Errorf("no user provided. Use --user flag or set user in config file")
		}
	}
	passwd, _ := cmd.Flags().GetString("passwd")
	if passwd == "" {
		passwd = cfg.Password
		if passwd == "" {
			return fmt.Errorf("no password provided. Use --passwd flag or set password in config file")
		}
	}

	dirCfg := directory.NewConfig(cfg.Server, user, passwd, cfg.Database)
	dirCfg.VerifyCert = cfg.VerifyCert
	dirCfg.EnforceEncryption = cfg.EnforceEncryption
	dirCfg.ClientTag = cfg.ClientTag

	client, err := directory.New(dirCfg)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}

	sid, err := client.SessionID()
	client.Logout()
	if err != nil {
		return fmt.Errorf("session validation failed: %w", err)
	}

	cfg.User = user
	cfg.Password = passwd
	if err := cfg.WriteConfig(configFile); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	if jsonOutput {
		printJSON(map[string]string{
			"status":     "success",
			"session_id": sid,
		})
	} else {
		okLabel.Println("✓ Login successful")
	}
	return nil
}

// logoutCmd removes the stored credentials. Server sessions are already
// closed after every command, so there is nothing to end remotely.
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove stored credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return fmt.Errorf("no configuration loaded")
		}

		cfg.User = ""
		cfg.Password = ""
		if err := cfg.WriteConfig(configFile); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		if jsonOutput {
			printJSON(map[string]string{"status": "logged out"})
		} else {
			okLabel.Println("✓ Credentials removed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(logoutCmd)
}
