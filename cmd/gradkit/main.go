// Package main provides the gradkit CLI.
package main

import (
	"fmt"
	"os"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("gradkit %s\n", version)
		return
	}

	fmt.Printf("gradkit %s - forward/backward operation toolkit\n\n", version)
	fmt.Println("Usage:")
	fmt.Println("  gradkit version    Show version")
	fmt.Println("")
	fmt.Println("gradkit is a library: import github.com/gradkit-ml/gradkit/op and")
	fmt.Println("assemble operations into a network. A runnable training program")
	fmt.Println("lives in examples/regression:")
	fmt.Println("")
	fmt.Println("  go run ./examples/regression -samples 256 -hidden 16 -epochs 2000")
}
