package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Passes bool
	Encode bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("RESERDE_DEBUG_DECODE")
	d.Passes = boolEnv("RESERDE_DEBUG_PASSES")
	d.Encode = boolEnv("RESERDE_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

// Decode reports whether decoded trees are traced.
func Decode() bool {
	return d.Decode
}

// Passes reports whether trees are traced after each rewrite pass.
func Passes() bool {
	return d.Passes
}

// Encode reports whether trees are traced before encoding.
func Encode() bool {
	return d.Encode
}
