package sampling

import (
	"errors"
	"testing"
)

func TestResize_Apply(t *testing.T) {
	tests := []struct {
		name          string
		resize        Resize
		width, height int
		wantW, wantH  int
	}{
		{"none", NoResize(), 640, 480, 640, 480},
		{"half", ScaleBy(0.5), 641, 481, 320, 240},
		{"double", ScaleBy(2), 320, 240, 640, 480},
		{"tiny factor clamps to one", ScaleBy(0.001), 100, 100, 1, 1},
		{"dimensions ignore aspect", ToDimensions(100, 300), 640, 480, 100, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.resize.Apply(tt.width, tt.height)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("Apply(%d, %d) = %dx%d, want %dx%d", tt.width, tt.height, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestParseResize(t *testing.T) {
	tests := []struct {
		in      string
		want    Resize
		wantErr bool
	}{
		{"", NoResize(), false},
		{"none", NoResize(), false},
		{"0.5", ScaleBy(0.5), false},
		{"640x360", ToDimensions(640, 360), false},
		{"640X360", ToDimensions(640, 360), false},
		{"-1", Resize{}, true},
		{"0", Resize{}, true},
		{"axb", Resize{}, true},
		{"0x100", Resize{}, true},
		{"big", Resize{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseResize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseResize(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidResize) {
					t.Errorf("expected ErrInvalidResize, got %v", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseResize(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestResize_String(t *testing.T) {
	for _, r := range []Resize{NoResize(), ScaleBy(0.25), ToDimensions(320, 200)} {
		parsed, err := ParseResize(r.String())
		if err != nil {
			t.Fatalf("ParseResize(%q): %v", r.String(), err)
		}
		if parsed != r {
			t.Errorf("expected %+v, got %+v", r, parsed)
		}
	}
}
