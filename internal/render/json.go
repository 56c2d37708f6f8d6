package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joshhsoj1902/steam-library-exporter/internal/library"
	"github.com/joshhsoj1902/steam-library-exporter/internal/logger"
	"github.com/sirupsen/logrus"
)

const JSONFileName = "steam_data.json"

// EncodeJSON encodes the summary with a four space indent. Non-ASCII and
// HTML characters are written as is.
func EncodeJSON(summary library.Summary) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(summary); err != nil {
		return nil, fmt.Errorf("failed to encode summary: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes dir/steam_data.json, creating dir when missing and
// replacing any previous file.
func WriteJSON(dir string, summary library.Summary) (string, error) {
	data, err := EncodeJSON(summary)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, JSONFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"path":  path,
		"bytes": len(data),
	}).Info("Wrote JSON summary")
	return path, nil
}
