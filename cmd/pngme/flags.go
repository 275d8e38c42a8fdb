package main

import (
	"errors"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/pkg/png"
)

func (o *options) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml (default: user config dir)",
			Destination: &o.configPath,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &o.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &o.logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &o.debug,
		},
		&cli.StringFlag{
			Name:        "crc-order",
			Usage:       "checksum byte order (type-data, data-type)",
			Value:       "type-data",
			Destination: &o.crcOrder,
		},
		&cli.IntFlag{
			Name:        "max-message-bytes",
			Usage:       "reject messages longer than this (0 = no limit)",
			Destination: &o.maxMessageBytes,
		},
	}
}

func fileFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "path to the PNG file",
		Destination: dst,
	}
}

func typeFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "type",
		Aliases:     []string{"t"},
		Usage:       "4-letter chunk type, e.g. RuSt",
		Destination: dst,
	}
}

func messageFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "message",
		Aliases:     []string{"m"},
		Usage:       "message text",
		Destination: dst,
	}
}

func outFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "out",
		Aliases:     []string{"o"},
		Usage:       "output path (default: overwrite the input file)",
		Destination: dst,
	}
}

// positional fills empty fields from positional arguments, in order:
// file, type, then the given extras.
func positional(cmd *cli.Command, fields ...*string) {
	args := cmd.Args().Slice()
	for _, f := range fields {
		if len(args) == 0 {
			return
		}
		if *f == "" {
			*f = args[0]
		}
		args = args[1:]
	}
}

func (o *options) chunkType(raw string) (png.ChunkType, error) {
	if raw == "" {
		if o.cfg.DefaultChunkType != nil {
			return *o.cfg.DefaultChunkType, nil
		}
		return png.ChunkType{}, errors.New("missing chunk type (--type or default_chunk_type in config)")
	}
	var t png.ChunkType
	if err := t.UnmarshalText([]byte(raw)); err != nil {
		return png.ChunkType{}, err
	}
	return t, nil
}

func requireFile(path string) error {
	if path == "" {
		return errors.New("missing PNG file (--file)")
	}
	return nil
}
