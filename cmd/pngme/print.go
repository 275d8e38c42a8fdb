package main

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/message"
)

func printCmd(o *options) *cli.Command {
	var (
		file   string
		asJSON  bool
	)

	return &cli.Command{
		Name:      "print",
		Usage:     "List the chunks of a PNG file",
		ArgsUsage: "[file]",
		Flags: []cli.Flag{
			fileFlag(&file),
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print chunks as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			positional(cmd, &file)

			f, _, err := o.openFile(file)
			if err != nil {
				return err
			}
			sums := message.Summaries(f)
			w := stdout(cmd)

			if asJSON {
				b, err := json.MarshalIndent(sums, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(b))
				return err
			}

			fmt.Fprintf(w, "%s: %d chunks, %d bytes\n", file, len(sums), f.Size())
			for _, s := range sums {
				fmt.Fprintf(w, "  [%d] %s len=%d crc=0x%08x", s.Index, s.Type, s.Length, s.CRC)
				if s.Text != "" {
					fmt.Fprintf(w, " text=%q", s.Text)
				}
				fmt.Fprintln(w)
			}
			return nil
		},
	}
}
