package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
)

func decodeCmd(o *options) *cli.Command {
	var file, chunkType string

	return &cli.Command{
		Name:      "decode",
		Usage:     "Print the message hidden in a PNG file",
		ArgsUsage: "[file] [type]",
		Flags: []cli.Flag{
			fileFlag(&file),
			typeFlag(&chunkType),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			positional(cmd, &file, &chunkType)

			t, err := o.chunkType(chunkType)
			if err != nil {
				return err
			}
			f, _, err := o.openFile(file)
			if err != nil {
				return err
			}
			msg, err := o.service().Decode(f, t)
			if err != nil {
				return err
			}
			logger.FromContext(ctx).Debug("message decoded", "file", file, "type", t, "bytes", len(msg))
			_, err = fmt.Fprintln(stdout(cmd), msg)
			return err
		},
	}
}
