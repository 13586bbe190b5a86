// package main holds the implementation of the restaurant weekly shift
// scheduler.
package main

import (
	"context"
	"log"

	"github.com/nextmv-io/sdk/run"
)

func main() {
	runner := run.CLI(solver)
	err := runner.Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}
