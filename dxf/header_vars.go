package dxf

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gofrs/uuid"

	"github.com/cadgraph/cadgraph.go/pkg/groupcode"
	"github.com/cadgraph/cadgraph.go/pkg/models"
)

// headerVar is one $NAME entry of the HEADER section.
type headerVar struct {
	name string
	code int
	// since is the first version that carries the variable; empty means all.
	since models.ACadVersion
	get   func(doc *models.Document) any
	set   func(h *models.Header, pairs []groupcode.Pair) error
}

func errHeaderValue(name string, v any) error {
	return fmt.Errorf("%w: header variable %s has invalid value %v", ErrMalformed, name, v)
}

func first(pairs []groupcode.Pair) any {
	if len(pairs) == 0 {
		return nil
	}
	return pairs[0].Value
}

func stringVar(name string, code int, field func(h *models.Header) *string) headerVar {
	return headerVar{
		name: name,
		code: code,
		get:  func(d *models.Document) any { return *field(d.Header) },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			s, ok := asString(first(pairs))
			if !ok {
				return errHeaderValue(name, first(pairs))
			}
			*field(h) = s
			return nil
		},
	}
}

func int16Var(name string, code int, field func(h *models.Header) *int16) headerVar {
	return headerVar{
		name: name,
		code: code,
		get:  func(d *models.Document) any { return *field(d.Header) },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			i, ok := asInt(first(pairs))
			if !ok {
				return errHeaderValue(name, first(pairs))
			}
			*field(h) = int16(i)
			return nil
		},
	}
}

func boolVar(name string, code int, field func(h *models.Header) *bool) headerVar {
	return headerVar{
		name: name,
		code: code,
		get:  func(d *models.Document) any { return *field(d.Header) },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			b, ok := asBool(first(pairs))
			if !ok {
				return errHeaderValue(name, first(pairs))
			}
			*field(h) = b
			return nil
		},
	}
}

func floatVar(name string, code int, field func(h *models.Header) *float64) headerVar {
	return headerVar{
		name: name,
		code: code,
		get:  func(d *models.Document) any { return *field(d.Header) },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			f, ok := asFloat(first(pairs))
			if !ok {
				return errHeaderValue(name, first(pairs))
			}
			*field(h) = f
			return nil
		},
	}
}

func xyzVar(name string, field func(h *models.Header) *models.XYZ) headerVar {
	return headerVar{
		name: name,
		code: 10,
		get:  func(d *models.Document) any { return *field(d.Header) },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			p := field(h)
			for _, pair := range pairs {
				f, ok := asFloat(pair.Value)
				if !ok {
					return errHeaderValue(name, pair.Value)
				}
				switch pair.Code {
				case 10:
					p.X = f
				case 20:
					p.Y = f
				case 30:
					p.Z = f
				}
			}
			return nil
		},
	}
}

func xyVar(name string, field func(h *models.Header) *models.XY) headerVar {
	return headerVar{
		name: name,
		code: 10,
		get:  func(d *models.Document) any { return *field(d.Header) },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			p := field(h)
			for _, pair := range pairs {
				f, ok := asFloat(pair.Value)
				if !ok {
					return errHeaderValue(name, pair.Value)
				}
				switch pair.Code {
				case 10:
					p.X = f
				case 20:
					p.Y = f
				}
			}
			return nil
		},
	}
}

// dateVar writes a time as a julian day rounded to 1e-8 days.
func dateVar(name string, field func(h *models.Header) *time.Time) headerVar {
	return headerVar{
		name: name,
		code: 40,
		get: func(d *models.Document) any {
			jd := models.ToJulianDate(*field(d.Header))
			return math.Round(jd*1e8) / 1e8
		},
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			f, ok := asFloat(first(pairs))
			if !ok {
				return errHeaderValue(name, first(pairs))
			}
			*field(h) = models.FromJulianDate(f)
			return nil
		},
	}
}

func guidVar(name string, field func(h *models.Header) *uuid.UUID) headerVar {
	return headerVar{
		name: name,
		code: 2,
		get: func(d *models.Document) any {
			u := *field(d.Header)
			if u == uuid.Nil {
				return nil
			}
			return "{" + strings.ToUpper(u.String()) + "}"
		},
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			s, _ := asString(first(pairs))
			u, err := uuid.FromString(strings.Trim(s, "{}"))
			if err != nil {
				return errHeaderValue(name, s)
			}
			*field(h) = u
			return nil
		},
	}
}

func (v headerVar) from(since models.ACadVersion) headerVar {
	v.since = since
	return v
}

// headerVars lists the variables in the order they are written.
var headerVars = []headerVar{
	{
		name: "$ACADVER",
		code: 1,
		get:  func(d *models.Document) any { return string(d.Header.Version) },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			s, _ := asString(first(pairs))
			v, err := models.ParseVersion(s)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrUnsupportedVersion, err)
			}
			h.Version = v
			return nil
		},
	},
	int16Var("$ACADMAINTVER", 70, func(h *models.Header) *int16 { return &h.MaintenanceVersion }),
	stringVar("$DWGCODEPAGE", 3, func(h *models.Header) *string { return &h.CodePage }),
	stringVar("$LASTSAVEDBY", 1, func(h *models.Header) *string { return &h.LastSavedBy }).from(models.AC1018),
	xyzVar("$INSBASE", func(h *models.Header) *models.XYZ { return &h.InsertionBase }),
	xyzVar("$EXTMIN", func(h *models.Header) *models.XYZ { return &h.ExtMin }),
	xyzVar("$EXTMAX", func(h *models.Header) *models.XYZ { return &h.ExtMax }),
	xyVar("$LIMMIN", func(h *models.Header) *models.XY { return &h.LimMin }),
	xyVar("$LIMMAX", func(h *models.Header) *models.XY { return &h.LimMax }),
	boolVar("$ORTHOMODE", 70, func(h *models.Header) *bool { return &h.OrthoMode }),
	boolVar("$REGENMODE", 70, func(h *models.Header) *bool { return &h.RegenMode }),
	boolVar("$FILLMODE", 70, func(h *models.Header) *bool { return &h.FillMode }),
	floatVar("$LTSCALE", 40, func(h *models.Header) *float64 { return &h.LineTypeScale }),
	floatVar("$TEXTSIZE", 40, func(h *models.Header) *float64 { return &h.TextHeight }),
	floatVar("$TRACEWID", 40, func(h *models.Header) *float64 { return &h.TraceWidth }),
	stringVar("$TEXTSTYLE", 7, func(h *models.Header) *string { return &h.CurrentTextStyle }),
	stringVar("$CLAYER", 8, func(h *models.Header) *string { return &h.CurrentLayer }),
	stringVar("$CELTYPE", 6, func(h *models.Header) *string { return &h.CurrentLineType }),
	{
		name: "$CECOLOR",
		code: 62,
		get:  func(d *models.Document) any { return d.Header.CurrentColor.Index() },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			i, ok := asInt(first(pairs))
			if !ok {
				return errHeaderValue("$CECOLOR", first(pairs))
			}
			h.CurrentColor = models.ColorIndex(int16(i))
			return nil
		},
	},
	floatVar("$CELTSCALE", 40, func(h *models.Header) *float64 { return &h.CurrentLineTypeScale }),
	{
		name: "$CELWEIGHT",
		code: 370,
		get:  func(d *models.Document) any { return d.Header.CurrentLineWeight },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			i, ok := asInt(first(pairs))
			if !ok {
				return errHeaderValue("$CELWEIGHT", first(pairs))
			}
			h.CurrentLineWeight = models.LineWeight(i)
			return nil
		},
	},
	stringVar("$DIMSTYLE", 2, func(h *models.Header) *string { return &h.CurrentDimStyle }),
	int16Var("$LUNITS", 70, func(h *models.Header) *int16 { return &h.LinearUnits }),
	int16Var("$LUPREC", 70, func(h *models.Header) *int16 { return &h.LinearPrecision }),
	int16Var("$AUNITS", 70, func(h *models.Header) *int16 { return &h.AngularUnits }),
	int16Var("$AUPREC", 70, func(h *models.Header) *int16 { return &h.AngularPrecision }),
	{
		name: "$ANGBASE",
		code: 50,
		get:  func(d *models.Document) any { return toDegrees(d.Header.AngleBase) },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			f, ok := asFloat(first(pairs))
			if !ok {
				return errHeaderValue("$ANGBASE", first(pairs))
			}
			h.AngleBase = toRadians(f)
			return nil
		},
	},
	boolVar("$ANGDIR", 70, func(h *models.Header) *bool { return &h.AngleClockwise }),
	int16Var("$PDMODE", 70, func(h *models.Header) *int16 { return &h.PointDisplayMode }),
	floatVar("$PDSIZE", 40, func(h *models.Header) *float64 { return &h.PointDisplaySize }),
	dateVar("$TDCREATE", func(h *models.Header) *time.Time { return &h.CreateDate }),
	dateVar("$TDUPDATE", func(h *models.Header) *time.Time { return &h.UpdateDate }),
	{
		name: "$HANDSEED",
		code: 5,
		get:  func(d *models.Document) any { return d.NextHandle() },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			v, ok := asHandle(first(pairs))
			if !ok {
				return errHeaderValue("$HANDSEED", first(pairs))
			}
			h.HandleSeed = v
			return nil
		},
	},
	{
		name: "$INSUNITS",
		code: 70,
		get:  func(d *models.Document) any { return d.Header.InsUnits },
		set: func(h *models.Header, pairs []groupcode.Pair) error {
			i, ok := asInt(first(pairs))
			if !ok {
				return errHeaderValue("$INSUNITS", first(pairs))
			}
			h.InsUnits = models.Units(i)
			return nil
		},
	},
	int16Var("$MEASUREMENT", 70, func(h *models.Header) *int16 { return &h.Measurement }),
	guidVar("$FINGERPRINTGUID", func(h *models.Header) *uuid.UUID { return &h.FingerprintGUID }),
	guidVar("$VERSIONGUID", func(h *models.Header) *uuid.UUID { return &h.VersionGUID }),
}

func lookupHeaderVar(name string) (headerVar, bool) {
	for _, v := range headerVars {
		if strings.EqualFold(v.name, name) {
			return v, true
		}
	}
	return headerVar{}, false
}
