package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/kk-code-lab/fxplorer/internal/cli"
)

func main() {
	// UTF-8 fallback so non-ASCII names render on minimal terminfo entries.
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
