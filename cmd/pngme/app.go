package main

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/config"
	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/message"
	"github.com/samcharles93/pngme/pkg/png"
)

// options holds the resolved global settings for one run of the CLI.
type options struct {
	configPath      string
	logLevel        string
	logFormat       string
	debug           bool
	crcOrder        string
	maxMessageBytes int

	cfg   config.Config
	codec png.Codec
	log   logger.Logger
}

func newApp() *cli.Command {
	o := &options{}
	return &cli.Command{
		Name:  "pngme",
		Usage: "Hide, reveal and strip messages in PNG chunks",
		Flags: o.flags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := o.setup(cmd, cmd.Root().ErrWriter); err != nil {
				return ctx, err
			}
			return logger.WithContext(ctx, o.log), nil
		},
		Commands: []*cli.Command{
			encodeCmd(o),
			decodeCmd(o),
			removeCmd(o),
			printCmd(o),
			chunkCmd(o),
			serveCmd(o),
			versionCmd(),
		},
	}
}

// setup loads the config file and lets it fill in flags the user did not set.
func (o *options) setup(cmd *cli.Command, logOut io.Writer) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}
	o.cfg = cfg

	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		o.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		o.logFormat = cfg.LogFormat
	}
	if cfg.MaxMessageBytes != nil && !cmd.IsSet("max-message-bytes") {
		o.maxMessageBytes = *cfg.MaxMessageBytes
	}
	if o.debug {
		o.logLevel = "debug"
	}

	o.codec = cfg.Codec()
	if cmd.IsSet("crc-order") {
		var order png.ChecksumOrder
		if err := order.UnmarshalText([]byte(o.crcOrder)); err != nil {
			return err
		}
		o.codec = png.Codec{Order: order}
	}

	if logOut == nil {
		logOut = os.Stderr
	}
	o.log, err = logger.Setup(logOut, o.logLevel, o.logFormat)
	return err
}

func (o *options) service() *message.Service {
	return message.NewService(message.Options{
		Codec:           o.codec,
		MaxMessageBytes: o.maxMessageBytes,
	})
}
