package lib

import "bytes"
import "strings"
import "encoding/json"

// GetStacktrace return stack-trace in human readable format, skipping the
// first `skip` call frames. Used to annotate exhaustion logging with the
// caller that triggered it.
func GetStacktrace(skip int, stack []byte) string {
	var buf bytes.Buffer
	lines := strings.Split(string(stack), "\n")
	// the first line is the "goroutine N [...]" header; each frame after it
	// takes two lines (function, file:line).
	if 1+skip*2 < len(lines) {
		lines = lines[1+skip*2:]
	}
	for _, call := range lines {
		buf.WriteString(call)
		buf.WriteString("\n")
	}
	return buf.String()
}

// Prettystats renders a stats map as JSON, indented if pretty is true.
// Panics if the map cannot be marshaled, which should never happen for the
// plain numeric maps the allocator reports.
func Prettystats(stats map[string]interface{}, pretty bool) string {
	if pretty {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			panic(err)
		}
		return string(data)
	}
	data, err := json.Marshal(stats)
	if err != nil {
		panic(err)
	}
	return string(data)
}
