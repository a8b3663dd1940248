package scanner

import "testing"

func TestMaskLiterals(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"no literal", `A1+B1`, `A1+B1`},
		{"whole literal", `"A1"`, `____`},
		{"literal inside call", `IF(A1,"B2",C3)`, `IF(A1,____,C3)`},
		{"escaped quote stays inside", `"he said ""B2"""+A1`, `________________+A1`},
		{"unterminated literal masks to end", `A1&"B2`, `A1&___`},
		{"adjacent literals", `"A1"&"B2"`, `____&____`},
		{"empty input", ``, ``},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskLiterals(tt.input, '_')
			if got != tt.expect {
				t.Errorf("MaskLiterals(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestScannerStates(t *testing.T) {
	sc := New(`A"x"B`)
	var inside []bool
	for _, ok := sc.Next(); ok; _, ok = sc.Next() {
		inside = append(inside, sc.InString())
	}
	want := []bool{false, true, true, true, false}
	if len(inside) != len(want) {
		t.Fatalf("scanned %d bytes, want %d", len(inside), len(want))
	}
	for i := range want {
		if inside[i] != want[i] {
			t.Errorf("byte %d: InString() = %v, want %v", i, inside[i], want[i])
		}
	}
}
