// Voxsplit reads mixed-language text, splits it into language-tagged chunks
// and speaks each chunk with the voice of its language.
//
// Usage:
//
//	voxsplit segment [text...]        print fragments and chunks
//	voxsplit speak [--file f|--stdin] synthesize to numbered WAV files
//	voxsplit serve                    run the HTTP and gRPC transports
//	voxsplit version
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			os.Stderr.WriteString("error: " + err.Error() + "\n")
		}
		cancel()
		os.Exit(1)
	}
}
