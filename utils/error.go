package utils

import "errors"

var ErrorUnsupportedFileType = errors.New("unsupported file type")
