package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/pkg/png"
)

func encodeCmd(o *options) *cli.Command {
	var file, chunkType, msg, out string

	return &cli.Command{
		Name:      "encode",
		Usage:     "Hide a message in a PNG file",
		ArgsUsage: "[file] [type] [message] [out]",
		Flags: []cli.Flag{
			fileFlag(&file),
			typeFlag(&chunkType),
			messageFlag(&msg),
			outFlag(&out),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			positional(cmd, &file, &chunkType, &msg, &out)

			t, err := o.chunkType(chunkType)
			if err != nil {
				return err
			}
			f, perm, err := o.openFile(file)
			if err != nil {
				return err
			}
			c, err := o.service().Encode(f, t, msg)
			if err != nil {
				return err
			}
			if out == "" {
				out = file
			}
			if err := png.WriteFile(out, f, perm); err != nil {
				return err
			}
			log.Info("message encoded", "file", out, "type", t, "length", c.Length(), "crc", c.CRC())
			return nil
		},
	}
}
