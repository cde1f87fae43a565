package pkmerrors

import (
	"errors"
	"fmt"
)

var (
	// ErrArtifactNotFound indicates the build-time version artifact is not
	// present. It is the only resolution error that triggers a fallback.
	ErrArtifactNotFound = errors.New("version artifact not found")

	// ErrFileNotFound indicates a file wasn't found in the specified path.
	ErrFileNotFound = errors.New("file not found")

	// ErrMalformedManifest indicates the manifest is not a valid JSON object,
	// or holds a value of an unexpected type.
	ErrMalformedManifest = errors.New("malformed manifest")

	// ErrMissingVersionKey indicates the manifest has no usable "version" key.
	ErrMissingVersionKey = errors.New("missing version key")

	// ErrResolvedOutsideRepo indicates a path resolved outside of its root.
	ErrResolvedOutsideRepo = errors.New("resolved outside repository root")

	// ErrInvalidArguments indicates invalid arguments were provided.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrInvalidFormat indicates an unexpected or invalid format was encountered.
	ErrInvalidFormat = errors.New("invalid format")

	// ErrJSONMarshal indicates an error occurred while marshaling JSON.
	ErrJSONMarshal = errors.New("marshal JSON")

	// ErrYAMLMarshal indicates an error occurred while marshaling YAML.
	ErrYAMLMarshal = errors.New("marshal YAML")

	// ErrWrite indicates an error occurred while writing.
	ErrWrite = errors.New("write")

	// ErrWriteFile indicates an error occurred while writing a file.
	ErrWriteFile = fmt.Errorf("file: %w", ErrWrite)
)
