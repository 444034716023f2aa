package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/stepviz/pkg/errors"
)

// FrameName returns the file name of a frame: "<algorithm>-<index><ext>",
// with the index zero-padded to four digits.
func FrameName(algorithmID string, f Frame) string {
	return fmt.Sprintf("%s-%04d%s", algorithmID, f.Index, Extension(f.Format))
}

// WriteFiles writes every frame and artifact of res into dir and returns the
// written paths in order.
func WriteFiles(dir string, res *Result) ([]string, error) {
	if err := errors.ValidateOutputPath(dir); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", dir)
	}

	var paths []string
	write := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
		}
		paths = append(paths, path)
		return nil
	}

	for _, f := range res.Frames {
		if err := write(FrameName(res.Algorithm.ID, f), f.Data); err != nil {
			return paths, err
		}
	}
	if data, ok := res.Artifacts[FormatGIF]; ok {
		if err := write(res.Algorithm.ID+Extension(FormatGIF), data); err != nil {
			return paths, err
		}
	}
	return paths, nil
}
