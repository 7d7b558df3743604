package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iudanet/koishop/internal/client/api"
	"github.com/iudanet/koishop/internal/client/auth"
	"github.com/iudanet/koishop/internal/client/cart"
	"github.com/iudanet/koishop/internal/client/catalog"
	"github.com/iudanet/koishop/internal/client/dashboard"
	"github.com/iudanet/koishop/internal/client/iocli"
	"github.com/iudanet/koishop/internal/client/order"
	"github.com/iudanet/koishop/internal/client/storage/boltdb"
	"github.com/iudanet/koishop/internal/config"
	"github.com/iudanet/koishop/internal/models"
)

// annotationNoStore помечает команды, которым не нужна локальная база
const annotationNoStore = "koishop/no-store"

// BuildInfo is set via ldflags during build
type BuildInfo struct {
	Version   string
	BuildDate string
	GitCommit string
}

// Cli holds the services a command works with. They are created in the
// root PersistentPreRunE, after flags and environment are parsed.
type Cli struct {
	io        iocli.IO
	logOut    io.Writer
	logger    *slog.Logger
	db        *boltdb.Storage
	auth      *auth.Service
	catalog   *catalog.Service
	cart      *cart.Store
	orders    *order.Service
	dashboard *dashboard.Service
}

// globalOptions - флаги корневой команды, переопределяют переменные окружения
type globalOptions struct {
	serverURL string
	dbPath    string
	logLevel  string
	envFile   string
	timeout   time.Duration
}

// New creates the CLI writing to stdio. Call Close after the command ran.
func New(stdio iocli.IO) *Cli {
	return &Cli{io: stdio, logOut: os.Stderr}
}

// RootCommand builds the koishop command tree
func (c *Cli) RootCommand(info BuildInfo) *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "koishop",
		Short:         "Koi shop storefront client",
		Long:          rootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[annotationNoStore] == "true" {
				return nil
			}
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			return c.open(cmd.Context(), cfg)
		},
	}
	root.SetOut(c.io)
	root.SetErr(c.io)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.serverURL, "server", "", "Server URL (env KOISHOP_SERVER_URL)")
	flags.StringVar(&opts.dbPath, "db", "", "Path to local database (env KOISHOP_DB_PATH)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error (env KOISHOP_LOG_LEVEL)")
	flags.StringVar(&opts.envFile, "env-file", ".env", "Optional dotenv file")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout (env KOISHOP_HTTP_TIMEOUT)")

	root.AddCommand(
		c.versionCommand(info),
		c.loginCommand(),
		c.registerCommand(),
		c.verifyOTPCommand(),
		c.logoutCommand(),
		c.statusCommand(),
		c.profileCommand(),
		c.productsCommand(),
		c.cartCommand(),
		c.checkoutCommand(),
		c.ordersCommand(),
		c.commentCommand(),
		c.dashboardCommand(),
	)

	return root
}

func (o *globalOptions) load(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.ServerURL = o.serverURL
	}
	if flags.Changed("db") {
		cfg.DBPath = o.dbPath
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = o.timeout
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// open создает хранилище, клиент API и сервисы
func (c *Cli) open(ctx context.Context, cfg config.Config) error {
	c.logger = cfg.NewLogger(c.logOut)

	db, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	c.db = db

	sealer, err := auth.NewDeviceSealer(ctx, db, cfg.DeviceSecret)
	if err != nil {
		return fmt.Errorf("failed to set up token sealing: %w", err)
	}
	sessions := auth.NewSessionStore(db, sealer)

	client := api.NewClient(cfg.ServerURL, sessions,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithLogger(c.logger),
	)

	c.auth = auth.NewService(client, sessions, db, db, c.logger)
	c.catalog = catalog.NewService(client, c.auth, c.logger)
	c.cart = cart.New(ctx, db, c.io, c.logger)
	c.orders = order.NewService(client, c.cart, c.auth, c.logger)
	c.dashboard = dashboard.NewService(client, c.auth)

	c.logger.Debug("client ready", "server", cfg.ServerURL, "db", cfg.DBPath, "sealed", sealer != nil)
	return nil
}

// Close closes the local database. Safe to call when nothing was opened.
func (c *Cli) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	return err
}

// UserMessage turns a command error into text for the user
func UserMessage(err error) string {
	var verr *models.ValidationError
	var apiErr *api.APIError

	switch {
	case errors.Is(err, api.ErrSessionExpired):
		return "Your session has expired. Please run 'koishop login' again."
	case errors.Is(err, auth.ErrNotSignedIn):
		return "Not signed in. Please run 'koishop login' first."
	case errors.Is(err, auth.ErrForbidden):
		return "This operation is not available for your account."
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &apiErr) && apiErr.Message != "":
		// сообщение сервера показываем как есть
		return apiErr.Message
	case errors.Is(err, api.ErrTransport):
		return "Cannot reach the server: " + err.Error()
	default:
		return err.Error()
	}
}

// prompt returns value if set, otherwise asks the user
func (c *Cli) prompt(value, label string) (string, error) {
	if strings.TrimSpace(value) != "" {
		return value, nil
	}
	input, err := c.io.ReadInput(label)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return input, nil
}
