package paths

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/jupyterlite/pkmext/pkg/pkmerrors"
)

// SourceRelative returns name joined onto the directory reached by starting
// at the directory holding the caller's source file and climbing levels
// parent directories. With levels 0 that is the source file's own directory.
// skip identifies the caller as for [runtime.Caller] (0 is the function
// calling SourceRelative).
//
// The result depends on the path recorded at compile time. Binaries built
// with -trimpath record module-relative paths, so the result is only
// meaningful in a source checkout.
func SourceRelative(skip, levels int, name string) (string, error) {
	_, file, _, ok := runtime.Caller(skip + 1)
	if !ok {
		return "", fmt.Errorf("%w: no caller information", pkmerrors.ErrFileNotFound)
	}

	dir := filepath.Dir(file)
	for range levels {
		dir = filepath.Dir(dir)
	}

	return filepath.Join(dir, name), nil
}
