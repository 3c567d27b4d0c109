package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/uuid"
)

// ACadVersion is the drawing format version written as $ACADVER.
type ACadVersion string

const (
	AC1015 ACadVersion = "AC1015" // 2000
	AC1018 ACadVersion = "AC1018" // 2004
	AC1021 ACadVersion = "AC1021" // 2007
	AC1024 ACadVersion = "AC1024" // 2010
	AC1027 ACadVersion = "AC1027" // 2013
	AC1032 ACadVersion = "AC1032" // 2018
)

var versionOrder = []ACadVersion{AC1015, AC1018, AC1021, AC1024, AC1027, AC1032}

// ParseVersion accepts a version string such as "AC1024", ignoring case.
func ParseVersion(s string) (ACadVersion, error) {
	v := ACadVersion(strings.ToUpper(strings.TrimSpace(s)))
	if v.Supported() {
		return v, nil
	}
	return "", fmt.Errorf("unsupported drawing version %q", s)
}

// Supported reports whether the codec can write this version.
func (v ACadVersion) Supported() bool {
	return v.rank() >= 0
}

func (v ACadVersion) rank() int {
	for i, x := range versionOrder {
		if x == v {
			return i
		}
	}
	return -1
}

// AtLeast reports whether v is o or newer.
func (v ACadVersion) AtLeast(o ACadVersion) bool {
	return v.rank() >= o.rank()
}

// IsUnicode reports whether strings are written as UTF-8 rather than in the
// drawing code page.
func (v ACadVersion) IsUnicode() bool {
	return v.AtLeast(AC1021)
}

// Header holds the drawing variables of the HEADER section.
type Header struct {
	Version            ACadVersion
	MaintenanceVersion int16
	CodePage           string
	LastSavedBy        string

	InsertionBase XYZ
	ExtMin        XYZ
	ExtMax        XYZ
	LimMin        XY
	LimMax        XY

	OrthoMode            bool
	RegenMode            bool
	FillMode             bool
	LineTypeScale        float64
	TextHeight           float64
	TraceWidth           float64
	CurrentLayer         string
	CurrentLineType      string
	CurrentTextStyle     string
	CurrentDimStyle      string
	CurrentColor         Color
	CurrentLineTypeScale float64
	CurrentLineWeight    LineWeight

	LinearUnits      int16
	LinearPrecision  int16
	AngularUnits     int16
	AngularPrecision int16
	// AngleBase is in radians.
	AngleBase      float64
	AngleClockwise bool
	InsUnits       Units
	Measurement    int16

	PointDisplayMode int16
	PointDisplaySize float64

	CreateDate time.Time
	UpdateDate time.Time

	// HandleSeed is the $HANDSEED read from a file. Writers take the seed
	// from Document.NextHandle instead.
	HandleSeed Handle

	FingerprintGUID uuid.UUID
	VersionGUID     uuid.UUID
}

// NewHeader returns the defaults of a new drawing.
func NewHeader() *Header {
	now := time.Now().UTC()
	return &Header{
		Version:              AC1032,
		CodePage:             "ANSI_1252",
		LimMax:               XY{X: 12, Y: 9},
		RegenMode:            true,
		FillMode:             true,
		LineTypeScale:        1,
		TextHeight:           2.5,
		TraceWidth:           0.05,
		CurrentLayer:         DefaultLayerName,
		CurrentLineType:      LineTypeByLayer,
		CurrentTextStyle:     DefaultTextStyleName,
		CurrentDimStyle:      DefaultDimStyleName,
		CurrentColor:         ColorByLayer,
		CurrentLineTypeScale: 1,
		CurrentLineWeight:    LineWeightByLayer,
		LinearUnits:          2,
		LinearPrecision:      4,
		AngularPrecision:     0,
		Measurement:          1,
		CreateDate:           now,
		UpdateDate:           now,
		HandleSeed:           1,
		FingerprintGUID:      uuid.Must(uuid.NewV4()),
		VersionGUID:          uuid.Must(uuid.NewV4()),
	}
}

const (
	julianUnixEpoch = 2440587.5
	secondsPerDay   = 86400
)

// ToJulianDate converts t to the fractional julian day used by $TDCREATE and
// $TDUPDATE.
func ToJulianDate(t time.Time) float64 {
	return julianUnixEpoch + float64(t.UnixMilli())/(secondsPerDay*1000)
}

// FromJulianDate is the inverse of ToJulianDate, with millisecond precision.
func FromJulianDate(jd float64) time.Time {
	ms := (jd - julianUnixEpoch) * secondsPerDay * 1000
	if ms < 0 {
		ms -= 0.5
	} else {
		ms += 0.5
	}
	return time.UnixMilli(int64(ms)).UTC()
}
