package normalize

import "testing"

func TestNumber(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		null bool
	}{
		{"R$ 12,50", 12.5, false},
		{"3,45%", 3.45, false},
		{"BRL 1.234", 1.234, false},
		{"22,4%", 22.4, false},
		{"7", 7, false},
		{"-0,5", -0.5, false},
		{"  38,52  ", 38.52, false},
		{"", 0, true},
		{"abc", 0, true},
		{"R$ ", 0, true},
		{"-", 0, true},
	}
	for _, c := range cases {
		got := Number(c.in)
		if c.null {
			if got != nil {
				t.Fatalf("Number(%q) = %v, want nil", c.in, *got)
			}
			continue
		}
		if got == nil {
			t.Fatalf("Number(%q) = nil, want %v", c.in, c.want)
		}
		if *got != c.want {
			t.Fatalf("Number(%q) = %v, want %v", c.in, *got, c.want)
		}
	}
}

func TestFloat(t *testing.T) {
	if p := Float(7); p == nil || *p != 7 {
		t.Fatalf("Float(7) = %v", p)
	}
}

func TestString(t *testing.T) {
	if String("") != nil {
		t.Fatal("String(\"\") should be nil")
	}
	if p := String("12/09/2025"); p == nil || *p != "12/09/2025" {
		t.Fatalf("String round trip failed: %v", p)
	}
}
