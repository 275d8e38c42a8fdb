package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/api"
	"github.com/samcharles93/pngme/internal/logger"
)

func serveCmd(o *options) *cli.Command {
	var (
		addr        string
		readTimeout time.Duration
		maxBody     int64
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the chunk and message REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Value:       "127.0.0.1:8080",
				Destination: &addr,
			},
			&cli.DurationFlag{
				Name:        "read-timeout",
				Usage:       "read timeout",
				Value:       30 * time.Second,
				Destination: &readTimeout,
			},
			&cli.Int64Flag{
				Name:        "max-body",
				Usage:       "maximum request body size in bytes",
				Value:       api.DefaultMaxBodyBytes,
				Destination: &maxBody,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			srvCfg := o.cfg.Server
			if srvCfg.Address != "" && !cmd.IsSet("addr") {
				addr = srvCfg.Address
			}
			if srvCfg.ReadTimeout != nil && !cmd.IsSet("read-timeout") {
				readTimeout = *srvCfg.ReadTimeout
			}
			if srvCfg.MaxBodyBytes != nil && !cmd.IsSet("max-body") {
				maxBody = *srvCfg.MaxBodyBytes
			}

			server := api.NewServer(api.Config{
				Service:      o.service(),
				Logger:       log,
				DefaultType:  o.cfg.DefaultChunkType,
				MaxBodyBytes: maxBody,
			})
			e := echo.New()
			e.Use(middleware.RequestLogger())
			e.Use(middleware.Recover())
			server.Register(e)

			log.Info("starting server", "address", addr, "crc_order", o.codec.Order, "max_body", maxBody)
			sc := echo.StartConfig{
				Address: addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}
