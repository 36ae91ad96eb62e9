package utils

import (
	"encoding/json"
)

// Marshal generic struct to indented JSON, for CLI output.
func MarshalToJSONIndent[T any](input T) (string, error) {
	jsonData, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		return "", err
	}
	return string(jsonData), nil
}
