package output

import (
	"strings"
	"testing"
)

func TestNoColorScheme(t *testing.T) {
	scheme := NoColorScheme()

	// With colors disabled the sprint output is the bare text.
	out := scheme.StatusOK.Sprint("200")
	if out != "200" {
		t.Errorf("Expected uncolored output, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("Expected no ANSI escapes, got %q", out)
	}
}

func TestDefaultColorScheme(t *testing.T) {
	scheme := DefaultColorScheme()

	if scheme.Method == nil || scheme.StatusOK == nil || scheme.StatusError == nil {
		t.Error("Expected all scheme colors to be initialized")
	}
}
