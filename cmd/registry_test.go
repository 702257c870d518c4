package cmd

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/spf13/cobra"
)

func TestRegistry_RegisterLookupApply(t *testing.T) {
	out := &bytes.Buffer{}
	summary := &cobra.Command{
		Use: "ledger:summary",
		RunE: func(c *cobra.Command, args []string) error {
			fmt.Fprint(c.OutOrStdout(), "items=3")
			return nil
		},
	}
	Register(summary)
	if got, ok := Lookup("ledger:summary"); !ok || got != summary {
		t.Fatalf("Lookup = %v, %v", got, ok)
	}
	if _, ok := Lookup("ledger:missing"); ok {
		t.Error("Lookup of unregistered command: want false")
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Error("duplicate Register: want panic")
			}
		}()
		Register(&cobra.Command{Use: "ledger:summary"})
	}()

	// A registered name colliding with a built-in command is not attached.
	shadow := &cobra.Command{Use: "reorder:list", Run: func(*cobra.Command, []string) {}}
	Register(shadow)

	rootCmd.SetErr(&bytes.Buffer{})
	Apply()
	if shadow.HasParent() {
		t.Error("shadowing command was attached to root")
	}

	rootCmd.SetOut(out)
	rootCmd.SetArgs([]string{"ledger:summary"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if out.String() != "items=3" {
		t.Errorf("output = %q, want items=3", out.String())
	}

	defer func() {
		if recover() == nil {
			t.Error("Register after Apply: want panic")
		}
	}()
	Register(&cobra.Command{Use: "ledger:late"})
}
