package main

import (
	"github.com/statutedb/lawdiff/cmd"
	"github.com/statutedb/lawdiff/internal/logging"
)

func main() {
	defer logging.RecoverPanic("main", nil)

	cmd.Execute()
}
