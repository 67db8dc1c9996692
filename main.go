package main

import (
	"github.td.teradata.com/sandbox/vtscreen/internal/cmd"
	"github.td.teradata.com/sandbox/vtscreen/internal/log"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
