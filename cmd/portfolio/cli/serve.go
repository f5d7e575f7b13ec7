package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
	"github.com/xXRex45Xx/MyPortfolio/internal/server"
	"github.com/xXRex45Xx/MyPortfolio/internal/service"
	"github.com/xXRex45Xx/MyPortfolio/internal/store"
	"github.com/xXRex45Xx/MyPortfolio/internal/upload"
)

const banner = `
 ___  ___  ___ _____ ___ ___  _    ___ ___
| _ \/ _ \| _ \_   _| __/ _ \| |  |_ _/ _ \
|  _/ (_) |   / | | | _| (_) | |__ | | (_) |
|_|  \___/|_|_\ |_| |_| \___/|____|___\___/
`

// defaultAdminPassword bootstraps the single admin account on first run so
// the server is usable before 'portfolio admin create' has ever been run.
// The login response is the only way to mutate content, so it must be
// changed immediately.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
)

func newServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the portfolio API server",
		Long:  "Start the HTTP server that exposes the public portfolio API and the JWT-protected admin API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")

	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))

	return cmd
}

func runServe() error {
	fmt.Print(banner)
	fmt.Println()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel())

	st, err := openStoreWith(cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info("store opened", "driver", cfg.Database.Driver)

	ctx := context.Background()
	if err := bootstrapAdmin(ctx, st, logger); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	uploads, err := upload.NewStore(cfg.Uploads.Root)
	if err != nil {
		return fmt.Errorf("init upload store: %w", err)
	}
	logger.Info("upload store initialized", "root", uploads.Root())

	authSvc := service.NewAuthService(st, cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)

	srvCfg := server.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		CORSOrigins:     cfg.Server.AllowedOrigins,
		BaseURL:         fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port),
	}
	srv := server.New(srvCfg, st, authSvc, uploads, logger)

	fmt.Printf("→ Portfolio %s\n", versionString())
	fmt.Printf("→ Listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ OpenAPI: http://%s:%d/openapi.json\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("→ Health:  http://%s:%d/healthz\n", cfg.Server.Host, cfg.Server.Port)
	fmt.Println()

	return srv.ListenAndServe()
}

// bootstrapAdmin creates the default admin account when none exists yet.
func bootstrapAdmin(ctx context.Context, st *store.Store, logger *slog.Logger) error {
	hasAdmin, err := st.HasAnyAdmin(ctx)
	if err != nil {
		return err
	}
	if hasAdmin {
		return nil
	}

	hash, err := service.HashPassword(defaultAdminPassword)
	if err != nil {
		return err
	}
	admin := &model.Admin{Username: defaultAdminUsername, PasswordHash: hash}
	if err := st.CreateAdmin(ctx, admin); err != nil {
		return err
	}
	logger.Warn("created default admin account, change the password now",
		"username", defaultAdminUsername)
	return nil
}
