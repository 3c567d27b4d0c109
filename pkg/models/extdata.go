package models

import "strings"

// ExtendedDataRecord is one (code, value) pair of application data. Codes are
// in the 1000..1071 range.
type ExtendedDataRecord struct {
	Code  int
	Value any
}

// ExtendedDataEntry groups the records registered by one application.
type ExtendedDataEntry struct {
	App     *AppID
	Records []ExtendedDataRecord
}

// ExtendedData is the optional side table of application data attached to a
// CadObject. Entries keep insertion order; each application appears once.
//
// The application ids join the AppIds table of the owning document like any
// other reference. Removing an AppId from the table drops its entry.
type ExtendedData struct {
	entries []*ExtendedDataEntry
	doc     *Document
}

// Len returns the number of applications with data.
func (x *ExtendedData) Len() int {
	return len(x.entries)
}

// Entries returns the entries in insertion order.
func (x *ExtendedData) Entries() []*ExtendedDataEntry {
	return x.entries
}

// Get returns the records of the application named app.
func (x *ExtendedData) Get(app string) (*ExtendedDataEntry, bool) {
	for _, e := range x.entries {
		if strings.EqualFold(e.App.Name(), app) {
			return e, true
		}
	}
	return nil, false
}

// Add appends records for app, replacing any previous data of the same
// application.
func (x *ExtendedData) Add(app *AppID, records ...ExtendedDataRecord) {
	if app == nil {
		return
	}
	if x.doc != nil {
		app = x.doc.AppIDs.resolve(app)
	}
	e := &ExtendedDataEntry{App: app, Records: records}
	for i, old := range x.entries {
		if strings.EqualFold(old.App.Name(), app.Name()) {
			x.entries[i] = e
			return
		}
	}
	x.entries = append(x.entries, e)
}

// Remove deletes the data of app and reports whether it existed.
func (x *ExtendedData) Remove(app string) bool {
	for i, e := range x.entries {
		if strings.EqualFold(e.App.Name(), app) {
			x.entries = append(x.entries[:i], x.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (x *ExtendedData) join(doc *Document) {
	x.doc = doc
	for _, e := range x.entries {
		e.App = doc.AppIDs.resolve(e.App)
	}
	doc.AppIDs.observers.subscribe(x)
}

func (x *ExtendedData) leave(doc *Document) {
	doc.AppIDs.observers.unsubscribe(x)
	x.doc = nil
	x.cloneValue()
}

func (x *ExtendedData) cloneValue() {
	for i, e := range x.entries {
		x.entries[i] = &ExtendedDataEntry{
			App:     e.App.Clone().(*AppID),
			Records: append([]ExtendedDataRecord(nil), e.Records...),
		}
	}
}

func (x *ExtendedData) entryRemoved(_ entrySource, removed CadObject) {
	kept := x.entries[:0]
	for _, e := range x.entries {
		if CadObject(e.App) != removed {
			kept = append(kept, e)
		}
	}
	x.entries = kept
}

func (x *ExtendedData) clone() ExtendedData {
	c := ExtendedData{entries: make([]*ExtendedDataEntry, len(x.entries))}
	copy(c.entries, x.entries)
	c.cloneValue()
	return c
}
