// mediator builds the three-party mediated bargaining game and writes it in
// Gambit's .efg format.
//
// Usage:
//
//	mediator build --params scenario.yaml [-o dir] [--record]
//	mediator build --m 1,1,1 --c 0,0,0 --x 0,0,1 --mediator 0.5
//	mediator outcomes --params scenario.yaml [--format markdown]
//	mediator leaves --params scenario.yaml [--format csv]
//	mediator sweep -f batch.yaml [--parallel 8] [--record]
//	mediator history [run-id]
//	mediator serve
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
