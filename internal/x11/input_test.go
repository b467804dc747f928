package x11

import (
	"slices"
	"testing"

	"github.com/BurntSushi/xgb/xproto"
)

func TestCleanMask(t *testing.T) {
	locks := uint16(xproto.ModMaskLock | xproto.ModMask2)

	tests := []struct {
		name  string
		state uint16
		want  uint16
	}{
		{"plain", xproto.ModMask4, xproto.ModMask4},
		{"caps and num lock", xproto.ModMask4 | xproto.ModMaskShift | xproto.ModMaskLock | xproto.ModMask2, xproto.ModMask4 | xproto.ModMaskShift},
		{"held button", xproto.ModMask1 | xproto.KeyButMaskButton1, xproto.ModMask1},
		{"nothing", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanMask(tt.state, locks); got != tt.want {
				t.Fatalf("cleanMask(%#x) = %#x, want %#x", tt.state, got, tt.want)
			}
		})
	}
}

func TestLockCombinations(t *testing.T) {
	got := lockCombinations([]uint16{xproto.ModMaskLock, xproto.ModMask2})
	want := []uint16{0, xproto.ModMaskLock, xproto.ModMask2, xproto.ModMaskLock | xproto.ModMask2}
	if !slices.Equal(got, want) {
		t.Fatalf("lockCombinations() = %v, want %v", got, want)
	}

	if got := lockCombinations(nil); !slices.Equal(got, []uint16{0}) {
		t.Fatalf("lockCombinations(nil) = %v, want [0]", got)
	}
}
