package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestProgressStages(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	p := NewProgress(2)
	p.SetOutput(&buf)
	p.Stage("Approving 50.00 USDC")
	p.Stage("Contributing 50.00 USDC")
	p.Done("Contributed 50.00 USDC")

	got := buf.String()
	for _, want := range []string{
		"[1/2] Approving 50.00 USDC...",
		"[2/2] Contributing 50.00 USDC...",
		"✓ Contributed 50.00 USDC",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestProgressSingleStage(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer

	p := NewProgress(1)
	p.SetOutput(&buf)
	p.Stage("Contributing 50.00 USDC")

	if !strings.Contains(buf.String(), "[1/1] Contributing 50.00 USDC...") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestProgressJSONModeSuppressed(t *testing.T) {
	var buf bytes.Buffer

	p := NewProgress(2)
	p.SetOutput(&buf)
	p.SetJSONMode(true)
	p.Stage("Approving")
	p.Done("done")

	if buf.Len() != 0 {
		t.Errorf("JSON mode should suppress output, got %q", buf.String())
	}
}
