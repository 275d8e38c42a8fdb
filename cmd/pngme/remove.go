package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/pkg/png"
)

func removeCmd(o *options) *cli.Command {
	var file, chunkType, out string

	return &cli.Command{
		Name:      "remove",
		Usage:     "Strip a hidden message from a PNG file",
		ArgsUsage: "[file] [type] [out]",
		Flags: []cli.Flag{
			fileFlag(&file),
			typeFlag(&chunkType),
			outFlag(&out),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			positional(cmd, &file, &chunkType, &out)

			t, err := o.chunkType(chunkType)
			if err != nil {
				return err
			}
			f, perm, err := o.openFile(file)
			if err != nil {
				return err
			}
			msg, removeErr := o.service().Remove(f, t)
			if removeErr != nil && png.KindOf(removeErr) != png.KindDecode {
				return removeErr
			}
			if out == "" {
				out = file
			}
			if err := png.WriteFile(out, f, perm); err != nil {
				return err
			}
			if removeErr != nil {
				log.Warn("removed chunk did not hold text", "file", out, "type", t, "error", removeErr)
				return nil
			}
			log.Info("message removed", "file", out, "type", t)
			_, err = fmt.Fprintln(stdout(cmd), msg)
			return err
		},
	}
}
