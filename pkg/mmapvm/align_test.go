package mmapvm

import "testing"

func TestAlignForward(t *testing.T) {
	cases := []struct {
		value, divisor, want uint64
	}{
		{0, 8192, 0},
		{1, 8192, 8192},
		{8192, 8192, 8192},
		{8193, 8192, 16384},
		{16384, 8192, 16384},
		{100, 10, 100},
		{101, 10, 110},
	}

	for _, c := range cases {
		got := alignForward(c.value, c.divisor)
		if got != c.want {
			t.Errorf("alignForward(%d, %d) = %d, want %d", c.value, c.divisor, got, c.want)
		}
	}
}
