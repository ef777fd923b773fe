package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Avik32223/ringd/internal/config"
	"github.com/Avik32223/ringd/internal/httpapi"
	"github.com/Avik32223/ringd/internal/logging"
	"github.com/Avik32223/ringd/internal/resp"
	"github.com/Avik32223/ringd/internal/store"
)

const shutdownTimeout = 5 * time.Second

func main() {
	app := cli.App{
		Name:  "ringd",
		Usage: "serve named integer rings over RESP and HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{config.EnvVarPrefix + "_CONFIG_FILE"},
			},
			&cli.StringFlag{
				Name:  "resp-addr",
				Usage: "address for the RESP listener, empty to disable. ex :6380",
			},
			&cli.StringFlag{
				Name:  "http-addr",
				Usage: "address for the HTTP listener, empty to disable. ex :8080",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "one of DEBUG, INFO, WARN, ERROR",
			},
		},
		Action: run,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := app.RunContext(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if c.IsSet("resp-addr") {
		cfg.RESPAddr = c.String("resp-addr")
	}
	if c.IsSet("http-addr") {
		cfg.HTTPAddr = c.String("http-addr")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return cfg, cfg.Validate()
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := logging.Configure(os.Stderr, cfg.LogLevel)
	ks := store.New()
	g, ctx := errgroup.WithContext(c.Context)

	if cfg.RESPAddr != "" {
		s := resp.NewServer(cfg.RESPAddr, ks, logger)
		g.Go(func() error { return s.Start(ctx) })
	}

	if cfg.HTTPAddr != "" {
		if logging.Level() > slog.LevelDebug {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           httpapi.New(ks, logger).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error {
			logger.Info("http: listening", "addr", cfg.HTTPAddr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
