package dxf

import (
	"fmt"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// Section names in the order they are written.
const (
	SectionHeader   = "HEADER"
	SectionClasses  = "CLASSES"
	SectionTables   = "TABLES"
	SectionBlocks   = "BLOCKS"
	SectionEntities = "ENTITIES"
	SectionObjects  = "OBJECTS"
)

// section writes the open pair, the body and ENDSEC.
func (dw *docWriter) section(name string, body func() error) error {
	dw.cfg.Logger.Debug("writing section", "section", name)
	dw.w.Write(groupcode.Start, "SECTION")
	dw.w.Write(groupcode.Name, name)
	if err := body(); err != nil {
		return fmt.Errorf("section %s: %w", name, err)
	}
	dw.w.Write(groupcode.Start, "ENDSEC")
	return dw.w.Err()
}

func (dw *docWriter) writeHeader() error {
	return dw.section(SectionHeader, func() error {
		for _, v := range headerVars {
			if v.since != "" && !dw.cfg.Version.AtLeast(v.since) {
				continue
			}
			var value any
			switch v.name {
			case "$ACADVER":
				value = string(dw.cfg.Version)
			case "$DWGCODEPAGE":
				value = dw.cfg.CodePage
			default:
				value = v.get(dw.doc)
			}
			if isNilValue(value) || value == "" {
				continue
			}
			dw.w.Write(groupcode.VariableName, v.name)
			dw.w.Write(v.code, value)
		}
		return nil
	})
}

func (dw *docWriter) writeClasses() error {
	return dw.section(SectionClasses, func() error {
		for _, c := range dw.doc.Classes.All() {
			dw.w.Write(groupcode.Start, "CLASS")
			dw.w.Write(1, c.DxfName)
			dw.w.Write(2, c.CppClassName)
			dw.w.Write(3, c.ApplicationName)
			dw.w.Write(90, c.ProxyFlags)
			if dw.cfg.Version.AtLeast(models.AC1018) {
				dw.w.Write(91, c.InstanceCount)
			}
			dw.w.Write(280, c.WasAProxy)
			dw.w.Write(281, c.IsAnEntity)
		}
		return nil
	})
}

func (dw *docWriter) writeTables() error {
	return dw.section(SectionTables, func() error {
		for _, t := range dw.doc.SymbolTables() {
			if err := dw.writeTable(t); err != nil {
				return err
			}
		}
		return nil
	})
}

func (dw *docWriter) writeTable(t models.SymbolTable) error {
	w := dw.w
	w.Write(groupcode.Start, "TABLE")
	w.Write(groupcode.Name, t.Name())
	w.Write(groupcode.ObjectHandle, t.Handle())
	w.Write(groupcode.SoftPointer, models.Handle(0))
	w.Write(groupcode.Subclass, "AcDbSymbolTable")
	w.Write(70, int16(t.Len()))
	if t.Name() == "DIMSTYLE" {
		w.Write(groupcode.Subclass, "AcDbDimStyleTable")
		w.Write(71, int16(0))
	}
	for _, e := range t.Entries() {
		if err := dw.writeObject(e); err != nil {
			return fmt.Errorf("table %s: %w", t.Name(), err)
		}
	}
	w.Write(groupcode.Start, "ENDTAB")
	return w.Err()
}

func (dw *docWriter) writeBlocks() error {
	return dw.section(SectionBlocks, func() error {
		for _, r := range dw.doc.BlockRecords.All() {
			if err := dw.writeObject(r.BlockEntity()); err != nil {
				return err
			}
			if !r.IsModelSpace() {
				if err := dw.writeEntities(r.Entities().All()); err != nil {
					return err
				}
			}
			if err := dw.writeObject(r.BlockEnd()); err != nil {
				return err
			}
		}
		return nil
	})
}

func (dw *docWriter) writeEntities(entities []models.Entity) error {
	for _, e := range entities {
		if err := dw.writeObject(e); err != nil {
			return err
		}
	}
	return nil
}

func (dw *docWriter) writeEntitiesSection() error {
	return dw.section(SectionEntities, func() error {
		return dw.writeEntities(dw.doc.ModelSpace().Entities().All())
	})
}

// writeObjects writes the root dictionary and then everything queued while
// writing, including what the drain itself queues.
func (dw *docWriter) writeObjects() error {
	return dw.section(SectionObjects, func() error {
		dw.queue.PushFront(dw.doc.RootDictionary())
		for {
			obj, ok := dw.queue.Pop()
			if !ok {
				return nil
			}
			if err := dw.writeObject(obj); err != nil {
				return err
			}
		}
	})
}
