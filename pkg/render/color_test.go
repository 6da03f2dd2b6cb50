package render

import "testing"

func TestParseRGB(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"46,46,46", RGB(46, 46, 46), false},
		{" 255, 0 ,10 ", RGB(255, 0, 10), false},
		{"1,2", Color{}, true},
		{"1,2,3,4", Color{}, true},
		{"256,0,0", Color{}, true},
		{"a,b,c", Color{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseRGB(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParseRGB(%q) err = %v, wantErr %v", tc.in, err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("ParseRGB(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestFormatRGB(t *testing.T) {
	c := Hex(0x2e2e2e)
	if s := FormatRGB(c); s != "46,46,46" {
		t.Errorf("FormatRGB = %q, want 46,46,46", s)
	}
	back, err := ParseRGB(FormatRGB(c))
	if err != nil || back != c {
		t.Errorf("ParseRGB(FormatRGB(c)) = %v, %v", back, err)
	}
}

func TestMultiplyColor(t *testing.T) {
	c := RGB(200, 100, 50)

	tests := []struct {
		name      string
		intensity float64
		want      Color
	}{
		{"full", 1, c},
		{"half", 0.5, RGB(100, 50, 25)},
		{"negative clamps", -1, RGB(0, 0, 0)},
		{"overbright clamps", 2, c},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MultiplyColor(c, tc.intensity); got != tc.want {
				t.Errorf("MultiplyColor = %v, want %v", got, tc.want)
			}
		})
	}
}
