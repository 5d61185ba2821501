// Command pdfpage inspects and edits the page tree of a PDF object graph
// stored as JSON.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tsawler/pdfpage/internal/observability"
)

func main() {
	defer observability.Sync()

	if err := newRootCmd().Execute(); err != nil {
		observability.GetLogger().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		observability.Sync()
		os.Exit(1)
	}
}
