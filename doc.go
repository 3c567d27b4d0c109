// The [cadgraph] package reads and writes CAD drawings in the DXF interchange
// format.
//
// # Object Graph
//
// A drawing is a [models.Document]: symbol tables (layers, line types, text
// styles and so on), block records holding entities, and a tree of
// dictionaries holding the non-graphical objects. Every object added to a
// document receives a handle; references between objects always resolve
// into the same document. Removing a table entry moves the objects that
// referenced it to the table default.
//
// See the [github.com/cadgraph/cadgraph.go/pkg/models] package for the object
// types.
//
// # Formats
//
// [WriteFile] and [Encode] write DXF ASCII, DXF binary or the CBOR pair stream,
// selected by [dxf.Config.Format]. [ReadFile] and [Decode] detect the format
// from the first bytes of the input.
//
// The field layout of every object type is described by the mapping catalog
// of [github.com/cadgraph/cadgraph.go/pkg/mapping]. Types whose layout the
// catalog cannot describe, such as polylines with their vertices, have a
// dedicated emitter in the [dxf] package.
//
// # Warnings
//
// Problems that do not stop a read or a write, such as an unknown group code
// or an unresolved handle, are reported as [dxf.Notification] values to
// [dxf.Config.Notify] and to the configured logger. Set [dxf.Config.Strict] to
// turn them into errors.
package cadgraph
