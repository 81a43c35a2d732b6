package main

import (
	"github.com/opendp/cla-tool/internal/cli"
)

func main() {
	cli.Execute()
}
