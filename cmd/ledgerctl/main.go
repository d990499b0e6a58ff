// Command ledgerctl runs the tax and import engines offline: it validates
// import files, prices single items and builds HSN seed data.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
