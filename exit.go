package main

import (
	"errors"

	"github.com/go-i2p/reesa/lib/blockcipher"
	"github.com/go-i2p/reesa/lib/filecrypt"
	"github.com/go-i2p/reesa/lib/keys"
	"github.com/go-i2p/reesa/lib/util/signals"
)

// Process exit codes.
const (
	exitOK                 = 0
	exitFailure            = 1
	exitNotStructured      = 2
	exitIncompleteKey      = 3
	exitUnacceptableKey    = 4
	exitPrivateKeyRequired = 5
	exitBlockProcessing    = 6
	exitKeyFileExists      = 7
	exitInterrupted        = 130
)

var exitCodes = []struct {
	err  error
	code int
}{
	{signals.ErrInterrupted, exitInterrupted},
	{keys.ErrNotStructuredData, exitNotStructured},
	{keys.ErrIncompleteKey, exitIncompleteKey},
	{keys.ErrUnacceptableKey, exitUnacceptableKey},
	{filecrypt.ErrPrivateKeyRequired, exitPrivateKeyRequired},
	{blockcipher.ErrBlockProcessing, exitBlockProcessing},
	{filecrypt.ErrKeyFileExists, exitKeyFileExists},
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	for _, c := range exitCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return exitFailure
}
