package shader

import (
	"io/fs"
	"os"
)

// LoadSource reads a shader stage source file from disk.
// Read failures come back as *Error with KindBadFile.
func LoadSource(stage StageKind, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{Kind: KindBadFile, Stage: stage, Path: path, Err: err}
	}
	return string(data), nil
}

// LoadSourceFS is LoadSource against fsys.
func LoadSourceFS(fsys fs.FS, stage StageKind, path string) (string, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return "", &Error{Kind: KindBadFile, Stage: stage, Path: path, Err: err}
	}
	return string(data), nil
}
