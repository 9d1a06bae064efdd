package codec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"math"
	"math/big"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
)

const (
	yamlStr    = "!!str"
	yamlInt    = "!!int"
	yamlFloat  = "!!float"
	yamlBool   = "!!bool"
	yamlNull   = "!!null"
	yamlBinary = "!!binary"
	yamlMap    = "!!map"
	yamlSeq    = "!!seq"
)

type yamlDecoder struct {
	cfg *config
}

// Decode reads every document of the input. A single document is the
// value itself; a stream of several becomes a sequence.
func (d *yamlDecoder) Decode(buf *object.Buffer) (*object.Object, error) {
	data := buf.Bytes()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	yd := &yamlDec{cfg: d.cfg, budget: 64*len(data) + 1024}
	var docs []*object.Object
	for {
		var n yaml.Node
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, decodeErr(format.YAMLFormat, "", "%v", err)
		}
		o, err := yd.node(&n, 1)
		if err != nil {
			return nil, err
		}
		docs = append(docs, o)
	}
	switch len(docs) {
	case 0:
		return object.Unit(), nil
	case 1:
		return docs[0], nil
	}
	return object.Seq(docs...), nil
}

type yamlDec struct {
	cfg *config
	// budget bounds the nodes produced, since aliases may expand a small
	// document into a huge tree.
	budget int
}

func (d *yamlDec) fail(n *yaml.Node, msg string, args ...any) error {
	return decodeErr(format.YAMLFormat, fmt.Sprintf("line %d column %d", n.Line, n.Column), msg, args...)
}

func (d *yamlDec) node(n *yaml.Node, depth int) (*object.Object, error) {
	if depth > d.cfg.maxDepth {
		return nil, tooDeep(format.YAMLFormat, fmt.Sprintf("line %d column %d", n.Line, n.Column), d.cfg.maxDepth)
	}
	d.budget--
	if d.budget < 0 {
		return nil, d.fail(n, "alias expansion too large")
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return object.Unit(), nil
		}
		return d.node(n.Content[0], depth)
	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, d.fail(n, "unresolved alias %q", n.Value)
		}
		return d.node(n.Alias, depth)
	case yaml.SequenceNode:
		if tag := customTag(n); tag != "" {
			return d.tagged(n, tag, depth)
		}
		res := object.Seq()
		for _, c := range n.Content {
			e, err := d.node(c, depth+1)
			if err != nil {
				return nil, err
			}
			res.Elems = append(res.Elems, e)
		}
		return res, nil
	case yaml.MappingNode:
		if tag := customTag(n); tag != "" {
			return d.tagged(n, tag, depth)
		}
		res := object.Map()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, err := d.node(n.Content[i], depth+1)
			if err != nil {
				return nil, err
			}
			v, err := d.node(n.Content[i+1], depth+1)
			if err != nil {
				return nil, err
			}
			res.Entries = append(res.Entries, object.KV(k, v))
		}
		return res, nil
	case yaml.ScalarNode:
		return d.scalar(n, depth)
	}
	return nil, d.fail(n, "unknown node kind %d", n.Kind)
}

// customTag returns a local tag such as !Active, which names the
// alternative of an enum value.
func customTag(n *yaml.Node) string {
	if len(n.Tag) < 2 || n.Tag[0] != '!' || n.Tag[1] == '!' {
		return ""
	}
	return n.Tag[1:]
}

func (d *yamlDec) tagged(n *yaml.Node, name string, depth int) (*object.Object, error) {
	variant := object.FromString(name)
	style := n.Style &^ yaml.TaggedStyle
	if n.Kind == yaml.ScalarNode && n.Value == "" && style == 0 {
		return object.UnitTag("", variant), nil
	}
	inner := *n
	inner.Tag = ""
	inner.Style = style
	v, err := d.node(&inner, depth+1)
	if err != nil {
		return nil, err
	}
	return object.NewtypeTag("", variant, v), nil
}

func (d *yamlDec) scalar(n *yaml.Node, depth int) (*object.Object, error) {
	if tag := customTag(n); tag != "" {
		return d.tagged(n, tag, depth)
	}
	switch n.ShortTag() {
	case yamlNull:
		return object.Unit(), nil
	case yamlBool:
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, d.fail(n, "%v", err)
		}
		return object.FromBool(b), nil
	case yamlInt:
		return d.integer(n)
	case yamlFloat:
		if n.Style == 0 && decimalInt(n.Value) {
			// integers too wide for 64 bits resolve as floats
			if v, ok := new(big.Int).SetString(n.Value, 0); ok {
				if o := bigInt(v); o != nil {
					return o, nil
				}
			}
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, d.fail(n, "%v", err)
		}
		return object.FromF64(f), nil
	case yamlBinary:
		b, err := base64.StdEncoding.DecodeString(stripSpace(n.Value))
		if err != nil {
			return nil, d.fail(n, "binary: %v", err)
		}
		return object.FromBytes(b), nil
	}
	return object.FromString(n.Value), nil
}

func (d *yamlDec) integer(n *yaml.Node) (*object.Object, error) {
	if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
		return object.FromI64(i), nil
	}
	if u, err := strconv.ParseUint(n.Value, 0, 64); err == nil {
		return object.FromU64(u), nil
	}
	if v, ok := new(big.Int).SetString(n.Value, 0); ok {
		if o := bigInt(v); o != nil {
			return o, nil
		}
		return nil, d.fail(n, "integer %s out of range", n.Value)
	}
	var i int64
	if err := n.Decode(&i); err != nil {
		return nil, d.fail(n, "%v", err)
	}
	return object.FromI64(i), nil
}

func decimalInt(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if (s[i] < '0' || s[i] > '9') && s[i] != '_' {
			return false
		}
	}
	return true
}

func stripSpace(s string) string {
	return string(bytes.Join(bytes.Fields([]byte(s)), nil))
}

type yamlEncoder struct {
	cfg *config
}

func (e *yamlEncoder) Encode(w io.Writer, o *object.Object) error {
	if err := object.CheckDepth(o, e.cfg.maxDepth); err != nil {
		return fmt.Errorf("%w: yaml: %w", ErrEncode, err)
	}
	n, err := yamlNode(o, nil)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(n); err != nil {
		return fmt.Errorf("%w: yaml: %w", ErrEncode, err)
	}
	return enc.Close()
}

func yamlScalar(tag, v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v}
}

func yamlNode(o *object.Object, p *path) (*yaml.Node, error) {
	switch o.Type {
	case object.BoolType:
		return yamlScalar(yamlBool, strconv.FormatBool(o.Bool)), nil
	case object.I8Type, object.I16Type, object.I32Type, object.I64Type:
		return yamlScalar(yamlInt, strconv.FormatInt(o.Int, 10)), nil
	case object.U8Type, object.U16Type, object.U32Type, object.U64Type:
		return yamlScalar(yamlInt, strconv.FormatUint(o.Uint, 10)), nil
	case object.I128Type, object.U128Type:
		return yamlScalar(yamlInt, o.Big.String()), nil
	case object.F32Type, object.F64Type:
		return yamlScalar(yamlFloat, yamlFloatText(o.Float, o.Type.Bits())), nil
	case object.CharType:
		return yamlScalar(yamlStr, string(o.Char)), nil
	case object.StringType:
		return yamlScalar(yamlStr, o.Text()), nil
	case object.DualTagKeyType:
		return yamlScalar(yamlStr, o.Name), nil
	case object.BytesType:
		return yamlScalar(yamlBinary, base64.StdEncoding.EncodeToString(o.Data.Bytes())), nil
	case object.OptionType:
		if o.Value == nil {
			return yamlScalar(yamlNull, "null"), nil
		}
		return yamlNode(o.Value, p)
	case object.UnitType, object.NamedUnitType:
		return yamlScalar(yamlNull, "null"), nil
	case object.UnitTagType:
		name, ok := tagName(o.Variant)
		if !ok {
			return nil, encodeErr(format.YAMLFormat, p, "alternative %s has no name", o.Variant)
		}
		return yamlScalar(yamlStr, name), nil
	case object.NewtypeType:
		return yamlNode(o.Value, p)
	case object.NewtypeTagType, object.TupleTagType, object.RecordTagType:
		name, ok := tagName(o.Variant)
		if !ok {
			return nil, encodeErr(format.YAMLFormat, p, "alternative %s has no name", o.Variant)
		}
		v, err := yamlNode(o.Value, p.Field(name))
		if err != nil {
			return nil, err
		}
		return &yaml.Node{Kind: yaml.MappingNode, Tag: yamlMap, Content: []*yaml.Node{yamlScalar(yamlStr, name), v}}, nil
	case object.SeqType, object.TupleType, object.NamedTupleType:
		res := &yaml.Node{Kind: yaml.SequenceNode, Tag: yamlSeq}
		for i, e := range o.Elems {
			n, err := yamlNode(e, p.Index(i))
			if err != nil {
				return nil, err
			}
			res.Content = append(res.Content, n)
		}
		return res, nil
	case object.MapType, object.FieldMapType, object.RecordType:
		res := &yaml.Node{Kind: yaml.MappingNode, Tag: yamlMap}
		for i, e := range entries(o) {
			k, err := yamlNode(e.Key, p.Index(i))
			if err != nil {
				return nil, err
			}
			kp := p.Index(i)
			if text, ok := keyText(e.Key); ok {
				kp = p.Field(text)
			}
			v, err := yamlNode(e.Value, kp)
			if err != nil {
				return nil, err
			}
			res.Content = append(res.Content, k, v)
		}
		return res, nil
	}
	return nil, encodeErr(format.YAMLFormat, p, "unknown type %s", o.Type)
}

func yamlFloatText(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return jsonFloat(f, bits)
}
