package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/graphdeck/graphdeck/internal/dashboard"
	"github.com/graphdeck/graphdeck/pkg/config"
	"github.com/graphdeck/graphdeck/pkg/graph"
	"github.com/graphdeck/graphdeck/pkg/scene"
	"github.com/graphdeck/graphdeck/pkg/session"
)

// serveOpts holds the command-line flags for the serve command. Flags win
// over the config file, which wins over the built-in defaults.
type serveOpts struct {
	configPath string // optional TOML config file
	host       string // bind host
	port       int    // bind port
	layout     string // initial layout algorithm
	colorBy    string // initial categorical coloring attribute
	neighbors  string // highlight direction: out, in, both
	redisAddr  string // optional Redis address for shared sessions
}

// newServeCmd creates the serve command for running the interactive
// dashboard on a graph file.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve the interactive dashboard for a graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&opts.host, "host", "", "bind host (default 127.0.0.1)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "bind port (default 8050)")
	cmd.Flags().StringVarP(&opts.layout, "layout", "l", "", "initial layout: circle, grid, random, concentric, breadthfirst, cose")
	cmd.Flags().StringVar(&opts.colorBy, "color-by", "", "initial coloring attribute")
	cmd.Flags().StringVar(&opts.neighbors, "neighbors", "", "highlight direction on directed graphs: out, in, both")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for shared session storage")

	return cmd
}

// resolveConfig layers flag values over the config file over defaults.
func resolveConfig(opts *serveOpts) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if opts.host != "" {
		cfg.Host = opts.host
	}
	if opts.port != 0 {
		cfg.Port = opts.port
	}
	if opts.layout != "" {
		cfg.Layout = opts.layout
	}
	if opts.colorBy != "" {
		cfg.ColorBy = opts.colorBy
	}
	if opts.neighbors != "" {
		cfg.Neighbors = opts.neighbors
	}
	if opts.redisAddr != "" {
		cfg.Redis.Addr = opts.redisAddr
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, input string, opts *serveOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := resolveConfig(opts)
	if err != nil {
		printError("%v", err)
		return err
	}

	layout, err := scene.ParseLayout(cfg.Layout)
	if err != nil {
		printError("%v", err)
		return err
	}
	mode, err := session.ParseNeighborMode(cfg.Neighbors)
	if err != nil {
		printError("%v", err)
		return err
	}

	prog := newProgress(logger)
	g, err := graph.ReadFile(input)
	if err != nil {
		printError("loading %s: %v", input, err)
		return err
	}
	prog.done(fmt.Sprintf("Loaded %s", input))

	store := session.Store(session.NewMemoryStore())
	if cfg.Redis.Addr != "" {
		rs, err := session.NewRedisStore(ctx, session.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			printError("%v", err)
			return err
		}
		defer rs.Close()
		store = rs
		logger.Info("using Redis session store", "addr", cfg.Redis.Addr)
	}

	srv, err := dashboard.NewServer(dashboard.Config{
		Addr:  fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Graph: g,
		Store: store,
		Defaults: session.Defaults{
			Layout:       string(layout),
			ColorAttr:    cfg.ColorBy,
			NeighborMode: mode,
		},
		Logger: logger,
	})
	if err != nil {
		printError("%v", err)
		return err
	}

	printSuccess("Dashboard ready")
	printStats(g.NodeCount(), g.EdgeCount(), g.Directed())
	printInfo("Listening on %s", StyleLink.Render("http://"+srv.Addr()))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		return ctx.Err()
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			printError("server: %v", err)
			return err
		}
		return nil
	}
}
