// cmd/fetchdeps/main.go
package main

import (
	"os"

	"github.com/arc-language/fetchdeps/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
