package main

import (
	"github.com/abdul-hamid-achik/flowspec/apps/cli/cmd"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
