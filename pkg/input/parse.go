package input

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stepviz/pkg/errors"
)

// Format is an input document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatText Format = "text"
)

// FormatFromPath infers the encoding from a file extension. Unknown
// extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	case ".txt", ".csv":
		return FormatText
	default:
		return FormatJSON
	}
}

// ParseArray parses comma-separated integers. Surrounding whitespace is
// trimmed from each token; tokens that are not integers, including "1 2",
// are dropped. An input with no integers at all is invalid.
//
//	ParseArray("5, 3, x, 8")  // Array{Values: [5 3 8]}
func ParseArray(text string) (Array, error) {
	fields := strings.Split(text, ",")
	values := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			continue
		}
		values = append(values, v)
	}
	a := Array{Values: values}
	if err := a.Validate(); err != nil {
		return Array{}, err
	}
	return a, nil
}

// ReadFile reads and validates input for family from path.
func ReadFile(path string, family Family) (Data, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Decode(data, family, FormatFromPath(path))
}

// Decode parses and validates an input document. The returned Data is always
// valid; on error nothing is returned, so callers keep their previous state.
func Decode(data []byte, family Family, format Format) (Data, error) {
	d, err := decode(data, family, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s %s input", format, family)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func decode(data []byte, family Family, format Format) (Data, error) {
	if family == FamilyArray {
		return decodeArray(data, format)
	}
	if format == FormatText {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "%s input cannot be plain text", family)
	}

	var target Data
	switch family {
	case FamilyGraph:
		target = &Graph{}
	case FamilyTree:
		target = &Tree{}
	case FamilyGrid:
		target = &Grid{}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown family %q", family)
	}
	if err := unmarshal(data, format, target); err != nil {
		return nil, err
	}
	return target, nil
}

// decodeArray accepts plain text, a bare list, or a {"values": [...]} object.
func decodeArray(data []byte, format Format) (Data, error) {
	if format == FormatText {
		// One value per line is accepted in .txt and .csv files.
		return ParseArray(strings.ReplaceAll(string(data), "\n", ","))
	}
	trimmed := bytes.TrimSpace(data)
	if format == FormatJSON && len(trimmed) > 0 && trimmed[0] == '[' {
		var values []int
		if err := json.Unmarshal(trimmed, &values); err != nil {
			return nil, err
		}
		return Array{Values: values}, nil
	}
	if format == FormatYAML {
		var values []int
		if err := yaml.Unmarshal(trimmed, &values); err == nil {
			return Array{Values: values}, nil
		}
	}
	var a Array
	if err := unmarshal(trimmed, format, &a); err != nil {
		return nil, err
	}
	return a, nil
}

func unmarshal(data []byte, format Format, v any) error {
	switch format {
	case FormatYAML:
		return yaml.Unmarshal(data, v)
	case FormatTOML:
		_, err := toml.Decode(string(data), v)
		return err
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	}
}
