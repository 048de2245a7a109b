package landscape

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// AttachmentPayload reads the file at path and renders the value of the
// CreateScriptAttachment file parameter: the base name and the base64
// content joined by "$$".
func AttachmentPayload(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read attachment: %w", err)
	}
	return filepath.Base(path) + "$$" + base64.StdEncoding.EncodeToString(content), nil
}
