package dxf

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// codePages maps $DWGCODEPAGE names to their single byte encodings.
var codePages = map[string]*charmap.Charmap{
	"ANSI_874":  charmap.Windows874,
	"ANSI_1250": charmap.Windows1250,
	"ANSI_1251": charmap.Windows1251,
	"ANSI_1252": charmap.Windows1252,
	"ANSI_1253": charmap.Windows1253,
	"ANSI_1254": charmap.Windows1254,
	"ANSI_1255": charmap.Windows1255,
	"ANSI_1256": charmap.Windows1256,
	"ANSI_1257": charmap.Windows1257,
	"ANSI_1258": charmap.Windows1258,
	"DOS437":    charmap.CodePage437,
	"DOS850":    charmap.CodePage850,
	"DOS852":    charmap.CodePage852,
	"DOS855":    charmap.CodePage855,
	"DOS866":    charmap.CodePage866,
	"ISO8859-1": charmap.ISO8859_1,
	"ISO8859-2": charmap.ISO8859_2,
	"ISO8859-5": charmap.ISO8859_5,
	"ISO8859-7": charmap.ISO8859_7,
}

func lookupCodePage(name string) (*charmap.Charmap, error) {
	cm, ok := codePages[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown code page %q", name)
	}
	return cm, nil
}

// textCodec converts strings between UTF-8 and the drawing code page. The zero
// value passes strings through unchanged.
type textCodec struct {
	enc *encoding.Encoder
	dec *encoding.Decoder
}

// newTextCodec returns the codec for strings of the given code page. Unicode
// drawings and unknown code pages pass strings through.
func newTextCodec(codePage string, unicode bool) textCodec {
	if unicode {
		return textCodec{}
	}
	cm, err := lookupCodePage(codePage)
	if err != nil {
		return textCodec{}
	}
	return textCodec{
		enc: encoding.ReplaceUnsupported(cm.NewEncoder()),
		dec: cm.NewDecoder(),
	}
}

func (c textCodec) encode(s string) string {
	if c.enc == nil || isASCII(s) {
		return s
	}
	out, err := c.enc.String(s)
	if err != nil {
		return s
	}
	return out
}

func (c textCodec) decode(s string) string {
	if c.dec == nil || isASCII(s) {
		return s
	}
	out, err := c.dec.String(s)
	if err != nil {
		return s
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
