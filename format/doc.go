// Package format names the serialization formats reserde can read and
// write, with their aliases, file suffixes and capabilities.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	if f.CanDecode() { ... }
//
// Bincode is not self-describing and is output only; JSONC is input only.
//
// # Related Packages
//
//   - github.com/signadot/reserde/codec - Decoders and encoders per format
package format
