// Package contrib holds programs and helpers built on the cadgraph module that
// are not part of the codec itself.
//
// [github.com/cadgraph/cadgraph.go/contrib/dxfconvert] converts drawings between
// DXF ASCII, DXF binary and the CBOR pair stream. The
// [github.com/cadgraph/cadgraph.go/contrib/testenv] package provides a
// deterministic slog handler for tests that assert on log output.
//
// Note that this package is outside of the backward compatibility guarantees
// of the cadgraph module.
package contrib
