package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dirwise/fdapi/pkg/directory"
)

// DefaultConfigFile is the default name of the config file
const DefaultConfigFile = "config.yaml"

// Config represents the configuration for fdcli.
// It contains server connection details and login credentials.
type Config struct {
	// Version of the configuration file format
	Version string `yaml:"version"`
	// Server is the URL of the directory server including scheme
	Server string `yaml:"server"`
	// Database is the directory database to log in to (see "fdcli databases")
	Database string `yaml:"database"`
	// User is the directory user to log in as
	User string `yaml:"user"`
	// Password is the login password (stored for convenience)
	Password string `yaml:"password"`
	// VerifyCert controls TLS certificate verification
	VerifyCert bool `yaml:"verify_cert"`
	// EnforceEncryption rejects non-https servers
	EnforceEncryption bool `yaml:"enforce_encryption"`
	// ClientTag is sent as the RPC id with every request
	ClientTag string `yaml:"client_tag"`
}

var config *Config

// GetDefaultConfigPath returns the default path for the config file.
// It uses the OS-specific config directory (e.g., ~/.config/fdcli on Linux).
func GetDefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(configDir, "fdcli", DefaultConfigFile), nil
}

// LoadConfig loads the configuration from the specified file.
// If no file is specified, it uses the default config location.
func LoadConfig(file string) error {
	if file == "" {
		var err error
		file, err = GetDefaultConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get default config path: %w", err)
		}
	}

	yamlStr, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("unable to read config file: %w", err)
	}

	var c Config
	if err = yaml.Unmarshal(yamlStr, &c); err != nil {
		return fmt.Errorf("unable to parse config file: %w", err)
	}

	if c.Server == "" {
		return errors.New("server is required; run \"fdcli config --server <url>\"")
	}
	c.Server = morphServer(c.Server)

	config = &c
	return nil
}

// GetConfig returns the current configuration
func GetConfig() *Config {
	return config
}

// WriteConfig writes the configuration to the specified file.
func (cfg *Config) WriteConfig(file string) error {
	if file == "" {
		return errors.New("file path cannot be empty")
	}

	err := os.MkdirAll(filepath.Dir(file), os.ModePerm)
	if err != nil {
		return fmt.Errorf("unable to create config directory: %w", err)
	}

	yamlStr, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("unable to generate configuration: %w", err)
	}

	err = os.WriteFile(file, yamlStr, os.FileMode(0600))
	if err != nil {
		return fmt.Errorf("unable to write config file: %w", err)
	}

	return nil
}

// morphServer normalizes the server URL: trailing slashes removed, https
// assumed when no scheme is given.
func morphServer(server string) string {
	if server == "" {
		return server
	}
	server = strings.TrimRight(server, "/")
	if !strings.HasPrefix(server, "http://") && !strings.HasPrefix(server, "https://") {
		server = "https://" + server
	}
	return server
}

// newClient opens an authenticated session from the stored configuration.
// Callers must Logout when done.
func newClient() (*directory.Client, error) {
	cfg := GetConfig()
	if cfg == nil {
		return nil, errors.New("no configuration loaded")
	}
	if cfg.User == "" || cfg.Password == "" {
		return nil, errors.New("no stored credentials; run \"fdcli login\" first")
	}

	dirCfg := directory.NewConfig(cfg.Server, cfg.User, cfg.Password, cfg.Database)
	dirCfg.VerifyCert = cfg.VerifyCert
	dirCfg.EnforceEncryption = cfg.EnforceEncryption
	dirCfg.ClientTag = cfg.ClientTag

	return directory.New(dirCfg)
}

// withClient runs fn inside a session, logging out afterwards.
func withClient(fn func(*directory.Client) error) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Logout()
	return fn(client)
}

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage CLI configuration",
	Long:  `Manage CLI configuration settings like the server connection and database selection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		serverFlag, _ := cmd.Flags().GetString("server")
		if serverFlag == "" {
			cmd.Help()
			return nil
		}

		databaseFlag, _ := cmd.Flags().GetString("database")
		verifyFlag, _ := cmd.Flags().GetBool("verify-cert")
		enforceFlag, _ := cmd.Flags().GetBool("enforce-encryption")
		tagFlag, _ := cmd.Flags().GetString("client-tag")

		// keep stored credentials when reconfiguring the connection
		cfg := &Config{Version: "0.2.0"}
		if err := LoadConfig(configFile); err == nil {
			cfg.User = GetConfig().User
			cfg.Password = GetConfig().Password
		}
		cfg.Server = morphServer(serverFlag)
		cfg.Database = databaseFlag
		cfg.VerifyCert = verifyFlag
		cfg.EnforceEncryption = enforceFlag
		cfg.ClientTag = tagFlag

		if err := cfg.WriteConfig(configFile); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}

		if jsonOutput {
			printJSON(map[string]string{
				"server":      cfg.Server,
				"config_file": configFile,
			})
		} else {
			fmt.Printf("Server configured: %s\n", cfg.Server)
			fmt.Printf("Config file: %s\n", configFile)
		}
		return nil
	},
}

func init() {
	configCmd.Flags().String("server", "", "Server URL (e.g. https://fd.example.com)")
	configCmd.Flags().String("database", "default", "Directory database to use")
	configCmd.Flags().Bool("verify-cert", true, "Verify the server TLS certificate")
	configCmd.Flags().Bool("enforce-encryption", true, "Reject non-https servers")
	configCmd.Flags().String("client-tag", "", "RPC id tag sent with every request")

	rootCmd.AddCommand(configCmd)
}
