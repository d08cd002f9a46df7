package main

import (
	"github.com/ssc-spc/bitsmcp/cmd/brclient/cmd"
	"github.com/ssc-spc/bitsmcp/internal/common"
)

func main() {
	common.ConfigureCommandLineLogging()
	cmd.Execute()
}
