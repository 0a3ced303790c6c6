package i18n

import "errors"

var (
	ErrNilAdapter        = errors.New("translation adapter is nil")
	ErrEmptyLanguageCode = errors.New("empty language code")
	ErrParsingCancelled  = errors.New("translation parsing cancelled")
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
	ErrFailedToReadFile  = errors.New("failed to read translation file")
	ErrUnsupportedFormat = errors.New("unsupported translation file format")
)
