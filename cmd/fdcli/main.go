package main

import (
	"github.com/dirwise/fdapi/internal/cli"
	"github.com/dirwise/fdapi/internal/common/logtrace"
)

func init() {
	logtrace.InitLogger()
}

func main() {
	cli.Execute()
}
