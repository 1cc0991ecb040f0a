//go:build !mecab || !cgo

package mecab

import (
	"os/exec"

	"github.com/cockroachdb/errors"
)

// newDefaultEngine falls back to the mecab executable when the package is
// built without libmecab. Build with -tags mecab to link it instead.
func newDefaultEngine(dicPath string) (Engine, error) {
	if _, err := exec.LookPath(DefaultCommand); err != nil {
		return nil, errors.Wrapf(err, "mecab: %s not found", DefaultCommand)
	}
	return NewCommandEngine(dicPath), nil
}
