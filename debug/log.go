package debug

import (
	"fmt"
	"io"
	"os"

	"github.com/signadot/reserde/object"
)

var out io.Writer = os.Stderr

// Logf writes a trace line to stderr. Trees are rendered in their debug
// notation and byte slices are quoted.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case *object.Object:
			if x == nil {
				args[i] = "<nil>"
				continue
			}
			args[i] = x.String()
		case []byte:
			args[i] = fmt.Sprintf("%q", x)
		case bool, string, int, float64:
		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}
