package square

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		row, col int8
		want     Square
		wantErr  error
	}{
		{
			name: "origin",
			row:  0, col: 0,
			want: Square(0),
		},
		{
			name: "center",
			row:  4, col: 4,
			want: Square(40),
		},
		{
			name: "last",
			row:  8, col: 8,
			want: Square(80),
		},
		{
			name: "row out of range",
			row:  9, col: 0,
			wantErr: ErrInvalidSquare,
		},
		{
			name: "col out of range",
			row:  0, col: 9,
			wantErr: ErrInvalidSquare,
		},
		{
			name: "negative",
			row:  -1, col: 3,
			wantErr: ErrInvalidSquare,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := New(tt.row, tt.col)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestFromIndex(t *testing.T) {
	t.Parallel()
	s, err := FromIndex(15)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Row() != 1 || s.Col() != 6 {
		t.Errorf("unexpected result: got=(%d,%d) want=(1,6)", s.Row(), s.Col())
	}
	if _, err := FromIndex(81); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidSquare)
	}
	if _, err := FromIndex(-1); !errors.Is(err, ErrInvalidSquare) {
		t.Errorf("unexpected error: got=%v want=%v", err, ErrInvalidSquare)
	}
}

func TestOffset(t *testing.T) {
	t.Parallel()
	center := Square(40) // (4,4)
	tests := []struct {
		name    string
		k       int8
		want    Square
		wantErr error
	}{
		{
			name: "two rows up",
			k:    2, // (-2, 0)
			want: Square(22),
		},
		{
			name: "one row up",
			k:    7, // (-1, 0)
			want: Square(31),
		},
		{
			name: "two cols left",
			k:    10, // (0, -2)
			want: Square(38),
		},
		{
			name: "identity",
			k:    12, // (0, 0)
			want: center,
		},
		{
			name: "two cols right",
			k:    14, // (0, +2)
			want: Square(42),
		},
		{
			name: "two rows down",
			k:    22, // (+2, 0)
			want: Square(58),
		},
		{
			name:    "window out of range",
			k:       25,
			wantErr: ErrInvalidSquare,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := center.Offset(tt.k)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestOffsetEdgeClipped(t *testing.T) {
	t.Parallel()
	corner := Square(0) // (0,0)
	// all upward and leftward deltas fall off the board
	for _, k := range []int8{2, 7, 10, 11} {
		if _, err := corner.Offset(k); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("offset %d: unexpected error: got=%v want=%v", k, err, ErrInvalidSquare)
		}
	}
	got, err := corner.Offset(22) // (+2, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Square(18) {
		t.Errorf("unexpected result: got=%v want=%v", got, Square(18))
	}
}

func TestNotation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		notation string
		want     Square
		wantErr  error
	}{
		{notation: "a1", want: Square(0)},
		{notation: "e5", want: Square(40)},
		{notation: "i9", want: Square(80)},
		{notation: "", wantErr: ErrInvalidNotation},
		{notation: "e", wantErr: ErrInvalidNotation},
		{notation: "j5", wantErr: ErrInvalidNotation},
		{notation: "e0", wantErr: ErrInvalidNotation},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.notation, func(t *testing.T) {
			t.Parallel()
			got, err := FromNotation(tt.notation)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("unexpected error: got=%v want=%v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("unexpected result: got=%v want=%v", got, tt.want)
			}
			if got.Notation() != tt.notation {
				t.Errorf("unexpected notation round trip: got=%v want=%v", got.Notation(), tt.notation)
			}
		})
	}
}
