//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The rule-table viewer requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/ca -sim life -rule conway`.")
	fmt.Fprintln(os.Stderr, "Headless surveys run with `go run ./cmd/survey`.")
	os.Exit(2)
}
