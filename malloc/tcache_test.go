package malloc

import "testing"

func TestTcacheBinIndex(t *testing.T) {
	cases := map[int64]int{15: -1, 16: 0, 32: 1, 1024: 63, 1025: -1, 1040: -1}
	for u, want := range cases {
		if got := tcacheBin(u, TCacheBins); got != want {
			t.Errorf("tcacheBin(%d): expected %v, got %v", u, want, got)
		}
	}
}

func TestTcachePushPop(t *testing.T) {
	tc := newTcache(TCacheBins, TCacheMaxPerBin)
	block := make([]byte, 64)

	if _, ok := tc.pop(64); ok {
		t.Fatalf("expected empty bin to miss")
	}
	if !tc.push(block) {
		t.Fatalf("expected push to succeed")
	}
	got, ok := tc.pop(64)
	if !ok || &got[0] != &block[0] {
		t.Fatalf("expected pop to return the same block pushed")
	}
	if _, ok := tc.pop(64); ok {
		t.Fatalf("expected bin to be empty again")
	}
}

func TestTcacheBinCapacity(t *testing.T) {
	tc := newTcache(TCacheBins, TCacheMaxPerBin)
	for i := 0; i < TCacheMaxPerBin; i++ {
		if !tc.push(make([]byte, 32)) {
			t.Fatalf("push #%d unexpectedly fell through", i)
		}
	}
	if tc.push(make([]byte, 32)) {
		t.Fatalf("expected the bin to be full at TCacheMaxPerBin")
	}
}

func TestTcacheRejectsUncacheableSizes(t *testing.T) {
	tc := newTcache(TCacheBins, TCacheMaxPerBin)
	if tc.push(make([]byte, 8)) {
		t.Errorf("expected an 8-byte block to be rejected (below 16-byte floor)")
	}
	if tc.push(make([]byte, 2048)) {
		t.Errorf("expected a 2048-byte block to be rejected (above 1024-byte ceiling)")
	}
}

func TestTcacheCustomGeometry(t *testing.T) {
	tc := newTcache(2, 1) // usable bytes cacheable: 16, 32; one slot each
	if !tc.push(make([]byte, 32)) {
		t.Fatalf("expected 32-byte block to fit bin 1 of a 2-bin cache")
	}
	if tc.push(make([]byte, 48)) {
		t.Errorf("expected a 48-byte block to be rejected by a 2-bin cache")
	}
	if !tc.push(make([]byte, 16)) {
		t.Fatalf("unexpected rejection")
	}
	if tc.push(make([]byte, 16)) {
		t.Errorf("expected bin 0 to be full at its configured max of 1")
	}
}
