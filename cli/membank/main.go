package main

import (
	"os"

	membankcmder "github.com/aletheiahq/membank/cmd/membank"
)

func main() {
	cmd := membankcmder.NewMembankCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
