package description

import (
	"math"

	"gopkg.in/yaml.v3"

	"github.com/maja42/declrom/compiler"
)

type rawRsrcType struct {
	Category *int64 `yaml:"category"`
	CType    *int64 `yaml:"cType"`
	DrSW     *int64 `yaml:"drSW"`
	DrHW     *int64 `yaml:"drHW"`
	DrHw     *int64 `yaml:"drHw"` // spelling used by older descriptions
}

type rawVidParams struct {
	BytesPerRow *int64 `yaml:"bytesPerRow"`
	HRes        *int64 `yaml:"hres"`
	VRes        *int64 `yaml:"vres"`
	PixelType   *int64 `yaml:"pixelType"`
	PixelSize   *int64 `yaml:"pixelSize"`
	CmpCount    *int64 `yaml:"cmpCount"`
	CmpSize     *int64 `yaml:"cmpSize"`
}

// convertPayload decodes the data node of a resource according to its kind.
func convertPayload(kind compiler.Kind, node *yaml.Node, path []string) (compiler.Payload, error) {
	if node.Kind == 0 {
		return nil, compiler.MalformedInput(path, "required field %q not found", "data")
	}

	switch kind {
	case compiler.KindLong:
		v, err := decodeInt(node, path, math.MinInt32, math.MaxUint32)
		if err != nil {
			return nil, err
		}
		return compiler.Long(uint32(v)), nil

	case compiler.KindString:
		if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!str" {
			return nil, compiler.MalformedInput(path, "expected a string")
		}
		return compiler.CString(node.Value), nil

	case compiler.KindInlineWord:
		v, err := decodeWord(node, path)
		if err != nil {
			return nil, err
		}
		return compiler.InlineWord(v), nil

	case compiler.KindRsrcType:
		var raw rawRsrcType
		if err := decodeMapping(node, path, &raw); err != nil {
			return nil, err
		}
		if raw.DrHW == nil {
			raw.DrHW = raw.DrHw
		}
		var t compiler.RsrcType
		err := words(path,
			field{"category", raw.Category, &t.Category},
			field{"cType", raw.CType, &t.CType},
			field{"drSW", raw.DrSW, &t.DrSW},
			field{"drHW", raw.DrHW, &t.DrHW},
		)
		return t, err

	case compiler.KindVidParams:
		var raw rawVidParams
		if err := decodeMapping(node, path, &raw); err != nil {
			return nil, err
		}
		var v compiler.VidParams
		err := words(path,
			field{"bytesPerRow", raw.BytesPerRow, &v.RowBytes},
			field{"hres", raw.HRes, &v.HRes},
			field{"vres", raw.VRes, &v.VRes},
			field{"pixelType", raw.PixelType, &v.PixelType},
			field{"pixelSize", raw.PixelSize, &v.PixelSize},
			field{"cmpCount", raw.CmpCount, &v.CmpCount},
			field{"cmpSize", raw.CmpSize, &v.CmpSize},
		)
		return v, err
	}
	return nil, compiler.UnknownResourceKind(path, kind.String())
}

func decodeMapping(node *yaml.Node, path []string, out interface{}) error {
	if node.Kind != yaml.MappingNode {
		return compiler.MalformedInput(path, "expected a mapping")
	}
	if err := node.Decode(out); err != nil {
		return &compiler.Error{
			Code:  compiler.CodeMalformedInput,
			Path:  path,
			Cause: err,
		}
	}
	return nil
}

func decodeInt(node *yaml.Node, path []string, lo, hi int64) (int64, error) {
	if node.Kind != yaml.ScalarNode || node.ShortTag() != "!!int" {
		return 0, compiler.MalformedInput(path, "expected an integer, got %q", node.Value)
	}
	var v int64
	if err := node.Decode(&v); err != nil {
		return 0, compiler.MalformedInput(path, "invalid integer %q", node.Value)
	}
	if v < lo || v > hi {
		return 0, compiler.MalformedInput(path, "value %d out of range", v)
	}
	return v, nil
}

func decodeWord(node *yaml.Node, path []string) (uint16, error) {
	v, err := decodeInt(node, path, math.MinInt16, math.MaxUint16)
	return uint16(v), err
}

// field binds a decoded mapping value to its 16 bit destination.
type field struct {
	name string
	src  *int64
	dst  *uint16
}

// words checks that every field is present and fits into 16 bits, then stores it.
func words(path []string, fields ...field) error {
	for _, f := range fields {
		if f.src == nil {
			return compiler.MalformedInput(path, "required field %q not found", f.name)
		}
		v := *f.src
		if v < math.MinInt16 || v > math.MaxUint16 {
			return compiler.MalformedInput(extend(path, f.name), "value %d out of range", v)
		}
		*f.dst = uint16(v)
	}
	return nil
}
