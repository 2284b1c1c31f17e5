package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	"github.com/rowalls/uh-internal-project/internal"
	"github.com/rowalls/uh-internal-project/internal/auth"
	"github.com/rowalls/uh-internal-project/internal/cache"
	"github.com/rowalls/uh-internal-project/internal/core/events"
	"github.com/rowalls/uh-internal-project/internal/dailyduty"
	dailydutyPostgres "github.com/rowalls/uh-internal-project/internal/dailyduty/postgres"
	"github.com/rowalls/uh-internal-project/internal/directory"
	"github.com/rowalls/uh-internal-project/internal/group"
	groupPostgres "github.com/rowalls/uh-internal-project/internal/group/postgres"
	"github.com/rowalls/uh-internal-project/internal/inventory"
	inventoryPostgres "github.com/rowalls/uh-internal-project/internal/inventory/postgres"
	"github.com/rowalls/uh-internal-project/internal/location"
	locationPostgres "github.com/rowalls/uh-internal-project/internal/location/postgres"
	"github.com/rowalls/uh-internal-project/internal/mailbox"
	"github.com/rowalls/uh-internal-project/internal/navbar"
	navbarPostgres "github.com/rowalls/uh-internal-project/internal/navbar/postgres"
	"github.com/rowalls/uh-internal-project/internal/permission"
	permissionPostgres "github.com/rowalls/uh-internal-project/internal/permission/postgres"
	"github.com/rowalls/uh-internal-project/internal/portmap"
	portmapPostgres "github.com/rowalls/uh-internal-project/internal/portmap/postgres"
	"github.com/rowalls/uh-internal-project/internal/rms"
	"github.com/rowalls/uh-internal-project/internal/roster"
	rosterPostgres "github.com/rowalls/uh-internal-project/internal/roster/postgres"
	"github.com/rowalls/uh-internal-project/internal/ticketing"
	"github.com/rowalls/uh-internal-project/internal/transport"
	"github.com/rowalls/uh-internal-project/internal/transport/rest"
	"github.com/rowalls/uh-internal-project/internal/user"
	userPostgres "github.com/rowalls/uh-internal-project/internal/user/postgres"
	"github.com/rowalls/uh-internal-project/pkg/logger"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config  *internal.Config
	Primary *store
	Portmap *store
	Cache   cache.Cache
	Events  *events.EventBus
	Router  *chi.Mux
	Logger  *slog.Logger
}

func (d *Dependencies) Close() {
	if err := d.Cache.Close(); err != nil {
		d.Logger.Error("cache close error", "error", err)
	}
	if err := d.Portmap.Close(); err != nil {
		d.Logger.Error("portmap database close error", "error", err)
	}
	if err := d.Primary.Close(); err != nil {
		d.Logger.Error("database close error", "error", err)
	}
}

func startHTTPServer() {
	ctx := context.Background()
	deps, err := initializeDependencies(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	deps.Logger.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		deps.Logger.Info("Received signal, shutting down...", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			deps.Logger.Error("Server shutdown error", "error", err)
		}
		if err := deps.Events.Drain(shutdownCtx); err != nil {
			deps.Logger.Warn("event handlers still running at shutdown", "error", err)
		}
		deps.Close()
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			deps.Logger.Error("Server failed to start", "error", err)
			deps.Close()
			os.Exit(1)
		}
	}

	deps.Logger.Info("Server stopped")
}

func initializeDependencies(ctx context.Context) (*Dependencies, error) {
	config, err := loadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.Configure(os.Stdout, config.Logging.Level, config.Logging.Format)

	if _, err := rest.LoadOpenAPI(ctx, rest.OpenAPIPath); err != nil {
		log.Warn("openapi document unavailable, swagger ui will be empty", "error", err)
	}

	primary, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	portmapStore, err := initDB(config.PortmapDatabase)
	if err != nil {
		_ = primary.Close()
		return nil, fmt.Errorf("failed to initialize portmap database: %w", err)
	}

	deps := &Dependencies{
		Config:  config,
		Primary: primary,
		Portmap: portmapStore,
		Cache:   newCache(ctx, config.Cache, log),
		Events:  events.NewEventBus(log),
		Router:  chi.NewRouter(),
		Logger:  log,
	}
	dailyduty.SubscribeAudit(deps.Events, log.With("component", "audit"))

	handlers, authz := wireHandlers(ctx, deps)
	rest.RegisterAllRoutes(deps.Router, handlers, authz, log)
	return deps, nil
}

func newCache(ctx context.Context, cfg internal.CacheConfig, log *slog.Logger) cache.Cache {
	if cfg.Driver == internal.CacheDriverRedis {
		return cache.NewRedis(ctx, cache.RedisConfig{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}, log)
	}
	log.Info("using in-process cache")
	return cache.NewMemory()
}

func wireHandlers(ctx context.Context, deps *Dependencies) (rest.Handlers, *permission.Authorization) {
	cfg, log := deps.Config, deps.Logger
	base := transport.NewBaseHandler(log)
	primaryDB := deps.Primary.Gorm

	ldap := directory.NewLDAP(directory.Config{
		URL:           cfg.Directory.URL,
		BindDN:        cfg.Directory.BindDN,
		BindPassword:  cfg.Directory.BindPassword,
		BaseDN:        cfg.Directory.BaseDN,
		UserAttribute: cfg.Directory.UserAttribute,
		UserDomain:    cfg.Directory.UserDomain,
		Timeout:       cfg.Directory.Timeout,
	}, log.With("component", "directory"))

	permissionService := permission.NewService(
		permissionPostgres.NewClassRepository(primaryDB),
		permissionPostgres.NewMembershipStore(deps.Primary.SQL),
		deps.Cache,
		cfg.Cache.PermissionTTLOrDefault(),
		log.With("component", "permission"),
	)
	authz := permission.NewAuthorization(permissionService, log.With("component", "authorization"))

	groupService := group.NewService(groupPostgres.NewGroupRepository(primaryDB), ldap, log.With("component", "group"))
	userService := user.NewService(
		userPostgres.NewUserRepository(primaryDB),
		ldap,
		groupService,
		permissionService,
		cfg.Onboarding.PermissionClass,
		log.With("component", "user"),
	)
	tokens := auth.NewJWTTokenGenerator(
		cfg.Security.AccessTokenSecret,
		cfg.Security.RefreshTokenSecret,
		cfg.Security.AccessTokenDuration,
		cfg.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(ldap, userService, tokens, log.With("component", "auth"))

	navbarService := navbar.NewService(
		navbarPostgres.NewLinkRepository(primaryDB),
		permissionService,
		deps.Cache,
		rest.NavbarRoutes(),
		navbar.Options{
			TTL:         cfg.Cache.NavbarTTLOrDefault(),
			DepthPolicy: navbar.ParseDepthPolicy(cfg.Navbar.DepthPolicy),
			StaticURL:   cfg.Navbar.StaticURL,
		},
		log.With("component", "navbar"),
	)

	locationService := location.NewService(locationPostgres.NewLocationRepository(primaryDB), log.With("component", "location"))
	inventoryService := inventory.NewService(
		inventoryPostgres.NewInventoryRepository(primaryDB),
		locationService,
		cfg.Inventory.DNSSuffix,
		log.With("component", "inventory"),
	)
	portmapService := portmap.NewService(
		portmapPostgres.NewPortmapRepository(deps.Portmap.Gorm),
		locationService,
		log.With("component", "portmap"),
	)

	rosterService := roster.NewService(
		rosterPostgres.NewMappingRepository(primaryDB),
		locationService,
		rms.NewClient(rms.Config{
			BaseURL: cfg.RMS.BaseURL,
			APIKey:  cfg.RMS.APIKey,
			Timeout: cfg.RMS.Timeout,
		}, log.With("component", "rms")),
		log.With("component", "roster"),
	)

	dutyService := dailyduty.NewService(
		dailydutyPostgres.NewDutyRepository(primaryDB),
		dailyduty.Backends{
			Mail: newMailCounter(ctx, cfg.Mail, log),
			Tickets: ticketing.NewClient(ticketing.Config{
				BaseURL: cfg.Ticketing.BaseURL,
				APIKey:  cfg.Ticketing.APIKey,
				Timeout: cfg.Ticketing.Timeout,
			}, log.With("component", "ticketing")),
			Printers: inventoryService,
		},
		deps.Events,
		log.With("component", "dailyduty"),
	)

	health := rest.NewHealthHandler(map[string]rest.Check{
		"primary": deps.Primary.SQL.PingContext,
		"portmap": deps.Portmap.SQL.PingContext,
		"cache":   deps.Cache.Ping,
	})

	return rest.Handlers{
		Health:     health,
		Auth:       auth.NewHandler(base, authService),
		User:       user.NewHandler(base, userService),
		Navbar:     navbar.NewHandler(base, navbarService),
		Permission: permission.NewHandler(base, permissionService),
		Group:      group.NewHandler(base, groupService),
		DailyDuty:  dailyduty.NewHandler(base, dutyService),
		Location:   location.NewHandler(base, locationService),
		Inventory:  inventory.NewHandler(base, inventoryService),
		Portmap:    portmap.NewHandler(base, portmapService),
		Roster:     roster.NewHandler(base, rosterService),
	}, authz
}

// newMailCounter returns nil when mail is not configured, which leaves the
// email and voicemail duties at an unknown count.
func newMailCounter(ctx context.Context, cfg internal.MailConfig, log *slog.Logger) mailbox.Counter {
	if cfg.ClientID == "" || cfg.RefreshToken == "" {
		log.Warn("mail backend not configured")
		return nil
	}
	counter, err := mailbox.NewGmail(ctx, cfg, log.With("component", "mailbox"))
	if err != nil {
		log.Error("failed to create mail backend", "error", err)
		return nil
	}
	return counter
}
