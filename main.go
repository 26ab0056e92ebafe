package main

import (
	"os"

	"github.com/ordishs/gocore"
	"github.com/torrejonv/movecall/cmd/movecallcli"
)

// Name used by build script for the binaries. (Please keep on single line)
const progname = "movecall"

// Version & commit strings injected at build with -ldflags -X...
var version string
var commit string

func init() {
	gocore.SetInfo(progname, version, commit)
}

func main() {
	os.Exit(movecallcli.Start(os.Args, os.Stdout, os.Stderr, version, commit))
}
