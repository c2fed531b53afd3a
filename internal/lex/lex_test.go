package lex

import "testing"

func TestNumbers(t *testing.T) {
	tests := []struct {
		in   string
		want []float64
		ok   bool
	}{
		{"", nil, true},
		{"1 2 3", []float64{1, 2, 3}, true},
		{"1,2 , 3", []float64{1, 2, 3}, true},
		{"-1-2", []float64{-1, -2}, true},
		{".5.5", []float64{0.5, 0.5}, true},
		{"1e2 3E-1", []float64{100, 0.3}, true},
		{"  10\n20\t", []float64{10, 20}, true},
		{"1 x", []float64{1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Numbers(tt.in)
			if ok != tt.ok {
				t.Fatalf("Numbers(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Numbers(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Numbers(%q)[%d] = %v, want %v", tt.in, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestScannerFlag(t *testing.T) {
	s := NewScanner("10x")
	if v, ok := s.Flag(); !ok || !v {
		t.Fatalf("first flag = %v,%v, want true,true", v, ok)
	}
	if v, ok := s.Flag(); !ok || v {
		t.Fatalf("second flag = %v,%v, want false,true", v, ok)
	}
	if _, ok := s.Flag(); ok {
		t.Fatal("third flag should fail on 'x'")
	}
	if s.Pos() != 2 {
		t.Errorf("Pos() = %d, want 2", s.Pos())
	}
}
