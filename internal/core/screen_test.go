package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(12, 4)

	if s.Width() != 12 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, expected 12x4", s.Width(), s.Height())
	}
	for y := 0; y < s.Height(); y++ {
		if row := s.Row(y); row != strings.Repeat(" ", 12) {
			t.Errorf("Row(%d) = %q, expected blank", y, row)
		}
	}
	if c := s.GetCell(3, 2); c != (Cell{Rune: ' '}) {
		t.Errorf("GetCell(3, 2) = %+v, expected uncolored space", c)
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColored(4, 2, '◎', ColorBrightWhite)

	got := s.GetCell(4, 2)
	if got.Rune != '◎' || got.Color != ColorBrightWhite {
		t.Errorf("GetCell(4, 2) = %+v, expected core glyph in bright white", got)
	}

	// Plain Set clears a previous color.
	s.Set(4, 2, 'x')
	if got := s.GetCell(4, 2); got.Color != ColorDefault {
		t.Errorf("Set kept color %v, expected default", got.Color)
	}
}

func TestScreenOutOfBounds(t *testing.T) {
	s := NewScreen(6, 3)

	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 1},
		{"right", 6, 1},
		{"above", 2, -1},
		{"below", 2, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s.SetColored(tc.x, tc.y, '•', ColorCyan)
			if got := s.GetCell(tc.x, tc.y); got != (Cell{Rune: ' '}) {
				t.Errorf("GetCell(%d, %d) = %+v, expected blank", tc.x, tc.y, got)
			}
		})
	}
	if s.String() != strings.Repeat(" ", 6)+"\n"+strings.Repeat(" ", 6)+"\n"+strings.Repeat(" ", 6) {
		t.Errorf("out-of-bounds writes leaked into the buffer:\n%s", s.String())
	}
}

func TestScreenDrawTextColoredClips(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawTextColored(5, 0, "█░░░", ColorGreen)

	if row := s.Row(0); row != "     █░░" {
		t.Errorf("Row(0) = %q, expected clipped bar", row)
	}
	for x := 5; x < 8; x++ {
		if c := s.GetCell(x, 0); c.Color != ColorGreen {
			t.Errorf("GetCell(%d, 0).Color = %v, expected green", x, c.Color)
		}
	}
}

func TestScreenDrawTextCenteredCountsRunes(t *testing.T) {
	tests := []struct {
		name  string
		width int
		text  string
		x     int
	}{
		{"ascii", 20, "PAUSED", 7},
		{"multibyte", 11, "◆◇◆", 4},
		{"odd remainder", 10, "abc", 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewScreen(tc.width, 1)
			s.DrawTextCentered(0, tc.text, ColorGray)

			first := []rune(tc.text)[0]
			if got := s.GetCell(tc.x, 0); got.Rune != first || got.Color != ColorGray {
				t.Errorf("GetCell(%d, 0) = %+v, expected %q in gray", tc.x, got, first)
			}
			if got := s.GetCell(tc.x-1, 0); got.Rune != ' ' {
				t.Errorf("text starts before x=%d", tc.x)
			}
		})
	}
}

func TestScreenMessageBox(t *testing.T) {
	s := NewScreen(12, 6)
	s.Fill('.')

	box := NewRect(2, 1, 7, 4)
	if box.Right() != 9 || box.Bottom() != 5 {
		t.Fatalf("edges = (%d, %d), expected (9, 5)", box.Right(), box.Bottom())
	}
	s.DrawRect(box, ' ')
	s.DrawBox(box)

	expected := []string{
		"............",
		"..┌─────┐...",
		"..│     │...",
		"..│     │...",
		"..└─────┘...",
		"............",
	}
	for y, want := range expected {
		if got := s.Row(y); got != want {
			t.Errorf("Row(%d) = %q, expected %q", y, got, want)
		}
	}
}

func TestScreenResizeKeepsOverlap(t *testing.T) {
	s := NewScreen(4, 2)
	s.SetColored(1, 1, '●', ColorRed)
	s.SetColored(3, 0, '■', ColorOrange)

	s.Resize(3, 3)
	if s.Width() != 3 || s.Height() != 3 {
		t.Fatalf("size = %dx%d, expected 3x3", s.Width(), s.Height())
	}
	if got := s.GetCell(1, 1); got != (Cell{Rune: '●', Color: ColorRed}) {
		t.Errorf("GetCell(1, 1) = %+v, expected red tier-1 glyph", got)
	}
	if row := s.Row(2); row != "   " {
		t.Errorf("new row = %q, expected blank", row)
	}

	// Same size is a no-op.
	s.Resize(3, 3)
	if got := s.GetCell(1, 1); got.Rune != '●' {
		t.Error("Resize to the same size cleared the buffer")
	}
}

func TestScreenRowOutOfRange(t *testing.T) {
	s := NewScreen(5, 2)
	if row := s.Row(7); row != "     " {
		t.Errorf("Row(7) = %q, expected blank row", row)
	}
}
