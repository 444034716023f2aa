package pipeline

import (
	"github.com/matzehuels/stepviz/pkg/errors"
	"github.com/matzehuels/stepviz/pkg/input"
)

// ResolveInput returns the validated input for family. Sources are tried in
// order: opts.Data, opts.Inline (JSON), opts.Values (arrays only),
// opts.InputPath, and finally the built-in sample.
func ResolveInput(family input.Family, opts Options) (input.Data, error) {
	switch {
	case opts.Data != nil:
		if opts.Data.Family() != family {
			return nil, errors.New(errors.ErrCodeFamilyMismatch, "expected %s input, got %s", family, opts.Data.Family())
		}
		if err := opts.Data.Validate(); err != nil {
			return nil, err
		}
		return opts.Data, nil

	case opts.Inline != "":
		return input.Decode([]byte(opts.Inline), family, input.FormatJSON)

	case opts.Values != "":
		if family != input.FamilyArray {
			return nil, errors.New(errors.ErrCodeFamilyMismatch, "--values needs an array algorithm, not %s", family)
		}
		return input.ParseArray(opts.Values)

	case opts.InputPath != "":
		return input.ReadFile(opts.InputPath, family)

	default:
		d := input.Sample(family)
		if d == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no sample input for family %q", family)
		}
		return d, nil
	}
}
