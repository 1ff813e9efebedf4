// Termtest is a testing tool for Unix terminal I/O. Lacking simple PTY support, running this tool
// manually is easier than writing automated tests.
package main

import (
	"context"
	"fmt"
	"time"

	"mipscore/internal/log"
	"mipscore/internal/tty"
)

var logger = log.DefaultLogger()

func main() {
	ctx := context.Background()

	ctx, console, cancel := tty.ConsoleContext(ctx)
	defer cancel()

	select {
	case <-ctx.Done():
		logger.Debug("cause", "err", context.Cause(ctx))
	default:
	}

	logger.Info("Polling keyboard. Type keys; exits after five seconds.")

	timeout := time.After(5 * time.Second)

	for {
		select {
		case key := <-console.Keys():
			fmt.Fprintf(console.Writer(), "key: %#02x\r\n", key)
		case <-timeout:
			cancel()
			return
		case <-ctx.Done():
			if err := context.Cause(ctx); err != nil {
				logger.Error(err.Error())
			} else {
				logger.Info("Done")
			}

			return
		}
	}
}
