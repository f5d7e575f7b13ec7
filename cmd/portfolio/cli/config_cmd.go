package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the portfolio configuration",
		Long:  "Initialize a default configuration file or display the current effective configuration.",
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())

	return cmd
}

// ---------- config init ----------

func newConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default portfolio.yaml configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing config file")

	return cmd
}

const defaultConfig = `# Portfolio Configuration

server:
  host: 0.0.0.0
  port: 8080
  shutdown_timeout: 30s
  # Browser origins allowed to call the API. Required.
  allowed_origins:
    - http://localhost:3000

database:
  driver: sqlite   # sqlite or postgres
  dsn: portfolio.db

# JWT key material. All three are required; prefer setting the secret via
# the PORTFOLIO_AUTH_JWT_SECRET environment variable.
auth:
  jwt_secret: ""
  jwt_issuer: portfolio
  jwt_audience: portfolio-clients

# Uploaded files (resume, profile picture, project images) live under this
# directory.
uploads:
  root: data

log:
  level: info    # debug, info, warn, error
`

func runConfigInit(force bool) error {
	path := "portfolio.yaml"

	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created %s\n", path)
	fmt.Println("Fill in auth.jwt_secret, then run 'portfolio serve'.")
	return nil
}

// ---------- config show ----------

func newConfigShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	return cmd
}

func runConfigShow() error {
	// Ensure config is loaded
	initConfig()

	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		fmt.Printf("Config file: %s\n", configFile)
	} else {
		fmt.Println("Config file: (none found, using defaults)")
	}
	fmt.Println()

	settings := viper.AllSettings()
	if len(settings) == 0 {
		fmt.Println("No configuration settings loaded.")
		fmt.Println("Run 'portfolio config init' to create a default configuration file.")
		return nil
	}

	// Never print the signing secret.
	if auth, ok := settings["auth"].(map[string]any); ok {
		if _, ok := auth["jwt_secret"]; ok {
			auth["jwt_secret"] = "(redacted)"
		}
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	os.Stdout.Write(out)

	return nil
}
