package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
