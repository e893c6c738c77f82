package cmd

import (
	"os"
	"testing"
)

// chdir mirrors t.Chdir from Go 1.24, which is unavailable on the Go 1.21
// toolchain used to build this module.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
