package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/filedepot/gateway-services/api"
	"github.com/filedepot/gateway-services/models/common"
	"github.com/filedepot/gateway-services/util"
	"github.com/filedepot/gateway-services/util/cli"
)

func main() {
	cli.Init()
	opts := cli.ParseOpts()
	if opts.PrintHelp {
		printHelp()
		cli.PrintDefaults()
		os.Exit(0)
	}

	// If anything goes wrong here, this panics.
	context := common.NewContext()

	pidFile := filepath.Join(context.Config.BaseWorkingDir,
		fmt.Sprintf("%s.pid", path.Base(os.Args[0])))
	if util.IsRunningInOtherProcess(pidFile) {
		fmt.Fprintf(os.Stderr, "Another gateway instance is already running (pid file %s)\n", pidFile)
		os.Exit(1)
	}
	if err := util.WritePidFile(pidFile); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot write pid file %s: %v\n", pidFile, err)
		os.Exit(1)
	}

	server := api.NewServer(context)
	err := server.Run()
	util.DeletePidFile(pidFile)
	if err != nil {
		context.Logger.Errorf("Gateway stopped: %v", err)
		os.Exit(1)
	}
}

func printHelp() {
	message := `
gateway_server runs the file-storage gateway HTTP API: upload, list,
download and delete files, plus corpus statistics, format histograms
and a blob/metadata reconciliation report.
`
	fmt.Println(message)
	fmt.Println(cli.EnvMessage)
}
