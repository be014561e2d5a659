package abi

import (
	"testing"

	"github.com/nrawrx3/mmap-exp/pkg/mmapvm"
)

func TestManagerOptionStructLayouts(t *testing.T) {
	tests := []struct {
		name     string
		v        any
		wantSize uintptr
	}{
		{"CreateOptions", mmapvm.CreateOptions{}, 32},
		{"MapNextOptions", mmapvm.MapNextOptions{}, 24},
		{"MapNextResult", mmapvm.MapNextResult{}, 16},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := CheckSize(tc.v, tc.wantSize); err != nil {
				t.Errorf("%v", err)
			}
		})
	}
}

func TestAnalyze_ManagerHasNoUnexpectedPadding(t *testing.T) {
	l := Analyze(mmapvm.Manager{})
	if l.TotalPadding != 0 {
		t.Errorf("Manager layout has %d bytes of padding, want 0:\n%s", l.TotalPadding, l.String())
	}
}
