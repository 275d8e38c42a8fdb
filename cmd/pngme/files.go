package main

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/pkg/png"
)

func (o *options) openFile(path string) (*png.File, os.FileMode, error) {
	if err := requireFile(path); err != nil {
		return nil, 0, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, err
	}
	f, err := o.codec.Open(path)
	if err != nil {
		return nil, 0, err
	}
	return f, info.Mode().Perm(), nil
}

func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
