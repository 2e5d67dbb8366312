package main

import (
	"os"

	"github.com/pixpilot/scaffoldfy-sub003/errors"
	"github.com/pixpilot/scaffoldfy-sub003/logger"
)

func main() {
	if err := Execute(); err != nil {
		logger.Error(err.Error())
		os.Exit(errors.ExitCode(err))
	}
}
