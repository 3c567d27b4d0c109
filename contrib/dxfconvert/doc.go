// Package dxfconvert converts drawings between DXF ASCII, DXF binary and the
// CBOR pair stream, and dumps the mapping catalog as JSON.
//
// The command lives in cmd/dxfconvert. Options come from a TOML file and
// command line flags, flags taking precedence:
//
//	input = "plan.dxf"
//	output = "plan.cbor"
//	format = "cbor"
//	version = "AC1027"
package dxfconvert
