//go:build !cli

package main

import (
	"log"

	"inventory.GO/cmd"
	"inventory.GO/config"
	_ "inventory.GO/custom"
)

// The default binary serves; every other command lives behind the cli build tag.
func main() {
	config.LoadEnv()
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	cmd.ServeMain()
}
