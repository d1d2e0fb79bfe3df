package main

import (
	"os"

	"github.com/go-i2p/logger"
	"github.com/go-i2p/reesa/lib/util/signals"
)

var log = logger.GetGoI2PLogger()

func main() {
	go signals.Handle()
	signals.RegisterInterruptHandler(exitOnIdleInterrupt(os.Exit))
	code := run(os.Args[1:], os.Stdout, os.Stderr)
	log.WithField("exit_code", code).Debug("reesa finished")
	signals.StopHandle()
	os.Exit(code)
}

// exitOnIdleInterrupt returns the process-wide interrupt handler. While a
// file operation runs, its context cancellation handles the signal and
// the operation reports the interruption itself; otherwise the process
// exits at once.
func exitOnIdleInterrupt(exit func(int)) signals.Handler {
	return func() {
		if signals.Active() > 0 {
			return
		}
		log.WithField("at", "exitOnIdleInterrupt").Debug("interrupted outside a file operation")
		exit(exitInterrupted)
	}
}
