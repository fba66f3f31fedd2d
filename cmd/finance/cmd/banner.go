package cmd

import (
	"fmt"
	"io"

	"github.com/common-nighthawk/go-figure"
)

// Version is set at build time with -ldflags "-X .../cmd.Version=..."
var Version = "dev"

func displayAppname(w io.Writer, appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	fmt.Fprintln(w, myFigure.String())
}
