package codec

import (
	"bytes"
	"encoding/base64"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
	"github.com/signadot/reserde/rewrite"
)

const (
	xmlAttrPrefix = "@"
	xmlTextKey    = "$text"
	xmlItem       = "item"
)

type xmlDecoder struct {
	cfg *config
}

// Decode returns the content of the document element. Attributes become
// "@name" entries, text next to child elements a "$text" entry, and child
// elements entries named after the element, in document order. An element
// holding only text is a string; an empty element is unit.
func (d *xmlDecoder) Decode(buf *object.Buffer) (*object.Object, error) {
	xd := &xmlDec{cfg: d.cfg, dec: xml.NewDecoder(bytes.NewReader(buf.Bytes()))}
	var root *object.Object
	for {
		tok, err := xd.dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, xd.fail("%v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil {
				return nil, xd.fail("more than one document element")
			}
			if root, err = xd.element(t, 1); err != nil {
				return nil, err
			}
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return nil, xd.fail("text outside the document element")
			}
		}
	}
	if root == nil {
		return nil, xd.fail("no document element")
	}
	return root, nil
}

type xmlDec struct {
	cfg *config
	dec *xml.Decoder
}

func (d *xmlDec) fail(msg string, args ...any) error {
	line, col := d.dec.InputPos()
	return decodeErr(format.XMLFormat, fmt.Sprintf("line %d column %d", line, col), msg, args...)
}

func (d *xmlDec) element(start xml.StartElement, depth int) (*object.Object, error) {
	if depth > d.cfg.maxDepth {
		line, col := d.dec.InputPos()
		return nil, tooDeep(format.XMLFormat, fmt.Sprintf("line %d column %d", line, col), d.cfg.maxDepth)
	}
	res := object.Map()
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		res.Entries = append(res.Entries, object.KV(object.FromString(xmlAttrPrefix+a.Name.Local), object.FromString(a.Value)))
	}
	var text strings.Builder
	for {
		tok, err := d.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return nil, d.fail("%v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			v, err := d.element(t, depth+1)
			if err != nil {
				return nil, err
			}
			res.Entries = append(res.Entries, object.KV(object.FromString(t.Name.Local), v))
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			s := strings.TrimSpace(text.String())
			if len(res.Entries) == 0 {
				if s == "" {
					return object.Unit(), nil
				}
				return object.FromString(s), nil
			}
			if s != "" {
				res.Entries = append(res.Entries, object.KV(object.FromString(xmlTextKey), object.FromString(s)))
			}
			return res, nil
		}
	}
}

type xmlEncoder struct {
	cfg *config
}

// Encode writes o as the content of a document element named after o's
// type name when it has one that is a valid XML name, and the configured
// root name otherwise.
func (e *xmlEncoder) Encode(w io.Writer, o *object.Object) error {
	if err := object.CheckDepth(o, e.cfg.maxDepth); err != nil {
		return fmt.Errorf("%w: xml: %w", ErrEncode, err)
	}
	root := e.cfg.xmlRoot
	switch o.Type {
	case object.RecordType, object.NamedTupleType, object.NamedUnitType, object.NewtypeType:
		if validXMLName(o.Name) {
			root = o.Name
		}
	}
	enc := xml.NewEncoder(w)
	if e.cfg.pretty {
		enc.Indent("", "  ")
	}
	xe := &xmlEnc{enc: enc}
	if err := xe.element(root, o, nil); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

type xmlEnc struct {
	enc *xml.Encoder
}

func (e *xmlEnc) fail(p *path, msg string, args ...any) error {
	return encodeErr(format.XMLFormat, p, msg, args...)
}

// element writes one element named name holding o.
func (e *xmlEnc) element(name string, o *object.Object, p *path) error {
	if !validXMLName(name) {
		return e.fail(p, "%q is not an XML element name", name)
	}
	o = unwrap(o)
	start := xml.StartElement{Name: xml.Name{Local: name}}
	var content func() error
	switch {
	case isMapLike(o.Type):
		ents := entries(o)
		var children []object.Entry
		var text *object.Object
		for _, ent := range ents {
			k, ok := keyText(ent.Key)
			if !ok {
				return e.fail(p, "map key %s is not text", ent.Key)
			}
			switch {
			case k == xmlTextKey:
				text = ent.Value
			case strings.HasPrefix(k, xmlAttrPrefix):
				v, ok := xmlText(ent.Value)
				if !ok {
					return e.fail(p.Field(k), "attribute value %s is not a scalar", ent.Value)
				}
				attr := k[len(xmlAttrPrefix):]
				if !validXMLName(attr) {
					return e.fail(p.Field(k), "%q is not an XML attribute name", attr)
				}
				start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: attr}, Value: v})
			default:
				children = append(children, object.KV(object.FromString(k), ent.Value))
			}
		}
		content = func() error {
			if text != nil {
				v, ok := xmlText(text)
				if !ok {
					return e.fail(p.Field(xmlTextKey), "text %s is not a scalar", text)
				}
				if err := e.enc.EncodeToken(xml.CharData(v)); err != nil {
					return err
				}
			}
			for _, c := range children {
				if err := e.child(c.Key.Text(), c.Value, p.Field(c.Key.Text())); err != nil {
					return err
				}
			}
			return nil
		}
	case o.Type == object.SeqType || o.Type == object.TupleType || o.Type == object.NamedTupleType:
		content = func() error {
			for i, el := range o.Elems {
				if err := e.element(xmlItem, el, p.Index(i)); err != nil {
					return err
				}
			}
			return nil
		}
	case o.Type == object.NewtypeTagType || o.Type == object.TupleTagType || o.Type == object.RecordTagType:
		alt, ok := tagName(o.Variant)
		if !ok {
			return e.fail(p, "alternative %s has no name", o.Variant)
		}
		content = func() error {
			return e.element(alt, o.Value, p.Field(alt))
		}
	case o.Type == object.OptionType || o.Type == object.UnitType || o.Type == object.NamedUnitType:
		content = func() error { return nil }
	default:
		v, ok := xmlText(o)
		if !ok {
			return e.fail(p, "cannot write %s as XML", o.Type)
		}
		content = func() error {
			return e.enc.EncodeToken(xml.CharData(v))
		}
	}
	if err := e.enc.EncodeToken(start); err != nil {
		return err
	}
	if err := content(); err != nil {
		return err
	}
	return e.enc.EncodeToken(start.End())
}

// child writes a map entry: sequences repeat the element, empty options
// are left out.
func (e *xmlEnc) child(name string, v *object.Object, p *path) error {
	v = unwrap(v)
	switch v.Type {
	case object.OptionType:
		return nil
	case object.SeqType, object.TupleType, object.NamedTupleType:
		for i, el := range v.Elems {
			if err := e.element(name, el, p.Index(i)); err != nil {
				return err
			}
		}
		return nil
	}
	return e.element(name, v, p)
}

func xmlText(o *object.Object) (string, bool) {
	o = unwrap(o)
	switch o.Type {
	case object.StringType:
		return o.Text(), true
	case object.BytesType:
		return base64.StdEncoding.EncodeToString(o.Data.Bytes()), true
	case object.DualTagKeyType:
		return o.Name, true
	case object.UnitTagType:
		return tagName(o.Variant)
	case object.OptionType, object.UnitType, object.NamedUnitType:
		return "", true
	}
	if o.Type.IsScalar() {
		return rewrite.ScalarText(o), true
	}
	return "", false
}

func validXMLName(s string) bool {
	if s == "" || strings.HasPrefix(strings.ToLower(s), "xml") {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', unicode.IsLetter(r):
		case i > 0 && (r == '-' || r == '.' || unicode.IsDigit(r)):
		default:
			return false
		}
	}
	return true
}
