package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventory.GO/core/registry"
)

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Register adds a command to the CLI. Call from init() in extension packages.
// Panics if the registry is locked or the command name is already taken.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	if _, taken := Lookup(c.Name()); taken {
		panic(fmt.Sprintf("cmd/registry: command %q registered twice", c.Name()))
	}
	list := append(registered(), c)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, list)
}

// Lookup finds a registered extension command by name.
func Lookup(name string) (*cobra.Command, bool) {
	for _, c := range registered() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Apply adds the registered commands to the root command and locks the registry.
// Names that collide with a built-in command are skipped with a warning.
func Apply() {
	for _, c := range registered() {
		if existing, _, err := rootCmd.Find([]string{c.Name()}); err == nil && existing != rootCmd {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "cmd/registry: %q shadows a built-in command, skipped\n", c.Name())
			continue
		}
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
