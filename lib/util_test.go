package lib

import "fmt"
import "strings"
import "testing"

var _ = fmt.Sprintf("dummy")

func TestGetStacktrace(t *testing.T) {
	stack := "goroutine 1 [running]:\nmain.main()\n\t/tmp/main.go:10\nfoo()\n\t/tmp/foo.go:3\n"
	out := GetStacktrace(1, []byte(stack))
	if strings.Contains(out, "goroutine 1") {
		t.Errorf("expected leading frames to be skipped, got %q", out)
	}
}

func TestPrettystats(t *testing.T) {
	stats := map[string]interface{}{"a": 1, "b": 2}
	if out := Prettystats(stats, false); !strings.Contains(out, `"a":1`) {
		t.Errorf("unexpected compact output %q", out)
	}
	if out := Prettystats(stats, true); !strings.Contains(out, "\n") {
		t.Errorf("expected indented output to contain newlines, got %q", out)
	}
}
