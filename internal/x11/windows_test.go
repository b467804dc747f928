package x11

import (
	"testing"

	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/ringwm/internal/geom"
)

func TestSizeHintsHonorsFlags(t *testing.T) {
	nh := &icccm.NormalHints{
		Flags:     icccm.SizeHintPMinSize | icccm.SizeHintPResizeInc | icccm.SizeHintUSPosition,
		MinWidth:  80,
		MinHeight: 40,
		MaxWidth:  900,
		MaxHeight: 700,
		WidthInc:  7,
		HeightInc: 14,
	}

	hints, user := sizeHints(nh)
	want := geom.Hints{MinWidth: 80, MinHeight: 40, WidthInc: 7, HeightInc: 14}
	if hints != want {
		t.Fatalf("hints = %+v, want %+v", hints, want)
	}
	if !user {
		t.Fatal("user position not reported")
	}
}

func TestSizeHintsProgramPositionIsNotUser(t *testing.T) {
	nh := &icccm.NormalHints{
		Flags:      icccm.SizeHintPPosition | icccm.SizeHintPBaseSize,
		BaseWidth:  2,
		BaseHeight: 3,
	}

	hints, user := sizeHints(nh)
	if user {
		t.Fatal("program position reported as user position")
	}
	if hints.BaseWidth != 2 || hints.BaseHeight != 3 {
		t.Fatalf("hints = %+v", hints)
	}
}
