package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// newDecoder returns a decoder that only knows the predefined XML entities
// and never resolves external ones.
func newDecoder(r io.Reader) *xml.Decoder {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	dec.Entity = nil
	return dec
}

// rootElement advances dec to the document root. Documents carrying a DTD
// are rejected since reports never need one.
func rootElement(dec *xml.Decoder, source string) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, &ParseError{Source: source, Err: errors.New("no root element")}
			}
			return xml.StartElement{}, &ParseError{Source: source, Err: err}
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, nil
		case xml.Directive:
			return xml.StartElement{}, &ParseError{Source: source, Err: fmt.Errorf("refusing XML directive %q", truncate(string(t), 40))}
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
