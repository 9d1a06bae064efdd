package codec

import (
	"strings"

	"github.com/fatih/color"

	"github.com/signadot/reserde/object"
)

type Colorable struct {
	Type object.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	ValueColor ColorAttr = iota
	KeyColor
	SepColor
	TagColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

// NewColors returns the default palette.
func NewColors() *Colors {
	colors := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	sep := color.RGB(255, 0, 196).SprintfFunc()
	key := color.RGB(196, 96, 16).SprintfFunc()
	number := color.RGB(128, 216, 236).SprintfFunc()
	for _, t := range object.Types() {
		colors.Map[Colorable{Type: t, Attr: SepColor}] = sep
		colors.Map[Colorable{Type: t, Attr: KeyColor}] = key
		colors.Map[Colorable{Type: t, Attr: TagColor}] = color.RGB(74, 92, 138).SprintfFunc()
		switch {
		case t.IsInteger(), t.IsFloat():
			colors.Map[Colorable{Type: t, Attr: ValueColor}] = number
		}
	}
	able := Colorable{Attr: ValueColor}
	able.Type = object.BoolType
	colors.Map[able] = color.CyanString
	for _, t := range []object.Type{object.OptionType, object.UnitType, object.NamedUnitType} {
		able.Type = t
		colors.Map[able] = color.RGB(168, 0, 196).SprintfFunc()
	}
	for _, t := range []object.Type{object.StringType, object.CharType, object.UnitTagType, object.DualTagKeyType} {
		able.Type = t
		colors.Map[able] = color.RGB(8, 196, 16).SprintfFunc()
	}
	able.Type = object.BytesType
	colors.Map[able] = color.RGB(198, 198, 46).SprintfFunc()
	for k, f := range colors.Map {
		colors.Map[k] = func(v string, _ ...any) string {
			return f(strings.ReplaceAll(v, "%", "%%"))
		}
	}
	return colors
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t object.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t object.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}
