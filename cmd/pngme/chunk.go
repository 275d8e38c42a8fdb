package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"
)

func chunkCmd(o *options) *cli.Command {
	var chunkType, msg, parse string

	return &cli.Command{
		Name:      "chunk",
		Usage:     "Serialize a single chunk as hex, or parse one with --parse",
		ArgsUsage: "[type] [message]",
		Flags: []cli.Flag{
			typeFlag(&chunkType),
			messageFlag(&msg),
			&cli.StringFlag{
				Name:        "parse",
				Usage:       "hex encoded chunk to validate and describe",
				Destination: &parse,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			w := stdout(cmd)
			if parse != "" {
				raw, err := hex.DecodeString(strings.TrimSpace(parse))
				if err != nil {
					return fmt.Errorf("decode hex: %w", err)
				}
				c, err := o.codec.ParseChunk(raw)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, c)
				if text, err := c.DataString(); err == nil {
					fmt.Fprintln(w, text)
				}
				return nil
			}

			positional(cmd, &chunkType, &msg)
			t, err := o.chunkType(chunkType)
			if err != nil {
				return err
			}
			c := o.codec.NewChunk(t, []byte(msg))
			fmt.Fprintln(w, c)
			_, err = fmt.Fprintln(w, hex.EncodeToString(c.Bytes()))
			return err
		},
	}
}
