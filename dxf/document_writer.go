package dxf

import (
	"fmt"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/mapping"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// docWriter walks a document and writes its records through a StreamWriter.
type docWriter struct {
	w     StreamWriter
	doc   *models.Document
	cfg   *Config
	queue *Queue
	note  notifier

	emitters map[models.ObjectType]emitter
}

func newDocWriter(w StreamWriter, doc *models.Document, cfg *Config) *docWriter {
	return &docWriter{
		w:     w,
		doc:   doc,
		cfg:   cfg,
		queue: NewQueue(),
		note:  notifier{cfg: cfg},

		emitters: defaultEmitters(),
	}
}

// writeObject writes one record: the common header, the subclass blocks and
// the extended data, followed by any owned chain such as polyline vertices.
func (dw *docWriter) writeObject(obj models.CadObject) error {
	emit, custom := dw.emitters[obj.ObjectType()]
	m, err := dw.cfg.Catalog.Get(obj.ObjectType())
	if err != nil {
		if !custom {
			return fmt.Errorf("%w: %s: %w", ErrNotImplemented, obj.ObjectType(), err)
		}
		m = nil
	}
	if !custom {
		emit = writeGeneric
	}

	dw.writeCommon(obj)
	if err := emit(dw, obj, m); err != nil {
		return err
	}
	return dw.w.Err()
}

func (dw *docWriter) writeCommon(obj models.CadObject) {
	dw.w.Write(groupcode.Start, obj.ObjectName())
	if obj.ObjectType() == models.TypeDimensionStyle {
		dw.w.Write(groupcode.DimStyleHandle, obj.Handle())
	} else {
		dw.w.Write(groupcode.ObjectHandle, obj.Handle())
	}
	if xd := obj.XDictionary(); xd != nil {
		dw.w.Write(groupcode.ControlString, "{ACAD_XDICTIONARY")
		dw.w.Write(groupcode.HardOwner, xd.Handle())
		dw.w.Write(groupcode.ControlString, "}")
		dw.queue.Push(xd)
	}
	dw.w.Write(groupcode.SoftPointer, obj.OwnerHandle())
}

// hooks are called at the Ignored field of the same name, so custom layouts
// land in their catalog position.
type hooks map[string]func() error

func (dw *docWriter) writeSubclasses(obj models.CadObject, m *mapping.Mapping, h hooks) error {
	if m == nil {
		return nil
	}
	for _, s := range m.Subclasses {
		if s.Name != "" {
			dw.w.Write(groupcode.Subclass, s.Name)
		}
		for _, f := range s.Fields {
			if f.Ref.Has(mapping.Ignored) {
				if fn, ok := h[f.Name]; ok {
					if err := fn(); err != nil {
						return err
					}
				}
				continue
			}
			dw.writeField(obj, f)
		}
	}
	return nil
}

func (dw *docWriter) writeField(src any, f *mapping.Field) {
	if !f.Ref.Has(mapping.Count) {
		dw.w.WriteField(f.Code, f.Get(src), f)
		return
	}
	items := f.Items(src)
	if f.CountCode != 0 {
		dw.w.Write(f.CountCode, len(items))
	}
	for _, item := range items {
		for _, el := range f.Elements {
			dw.writeField(item, el)
		}
	}
}

func (dw *docWriter) writeExtendedData(obj models.CadObject) error {
	for _, e := range obj.ExtendedData().Entries() {
		dw.w.Write(groupcode.XDataApp, e.App.Name())
		for _, r := range e.Records {
			if r.Code < 1000 || r.Code > 1071 || r.Code == groupcode.XDataApp {
				err := dw.note.warn(fmt.Sprintf("extended data of %s %s: code %d skipped", obj.ObjectName(), obj.Handle(), r.Code), nil)
				if err != nil {
					return err
				}
				continue
			}
			dw.w.Write(r.Code, r.Value)
		}
	}
	return nil
}
