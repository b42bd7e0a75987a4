package main

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/filedepot/gateway-services/models/common"
	"github.com/filedepot/gateway-services/util"
	"github.com/filedepot/gateway-services/util/cli"
	"github.com/filedepot/gateway-services/workers"
)

func main() {
	cli.Init()
	opts := cli.ParseOpts()
	if opts.PrintHelp {
		printHelp()
		cli.PrintDefaults()
		os.Exit(0)
	}

	context := common.NewContext()

	pidFile := filepath.Join(context.Config.BaseWorkingDir,
		fmt.Sprintf("%s.pid", path.Base(os.Args[0])))
	if util.IsRunningInOtherProcess(pidFile) {
		fmt.Fprintf(os.Stderr, "Another recorder instance is already running (pid file %s)\n", pidFile)
		os.Exit(1)
	}
	if err := util.WritePidFile(pidFile); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot write pid file %s: %v\n", pidFile, err)
		os.Exit(1)
	}

	worker := workers.NewDownloadRecorder(context)
	if err := worker.RegisterAsNsqConsumer(opts.ChannelBufferSize); err != nil {
		fmt.Fprintf(os.Stderr, "Cannot register NSQ consumer: %v\n", err)
		util.DeletePidFile(pidFile)
		os.Exit(1)
	}

	// This channel blocks until we get an interrupt,
	// so our program does not exit without Control-C
	// or other kill signal.
	<-worker.NSQConsumer.StopChan
	util.DeletePidFile(pidFile)
}

func printHelp() {
	message := `
download_recorder consumes download events from NSQ and appends each
one to the metadata store, where the gateway's statistics endpoint
reads the total download count.
`
	fmt.Println(message)
	fmt.Println(cli.EnvMessage)
}
