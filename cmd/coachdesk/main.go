package main

import (
	"github.com/terraincognita07/coachdesk/internal/cli"
	"github.com/terraincognita07/coachdesk/internal/logging"
	"go.uber.org/zap"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = ""

func main() {
	if err := cli.Execute(version); err != nil {
		logging.Fatal("coachdesk failed", zap.Error(err))
	}
}
