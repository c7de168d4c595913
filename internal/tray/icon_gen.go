package tray

import _ "embed"

//go:embed icon.ico
var iconData []byte

// generateIcon returns the embedded tray icon bytes.
func generateIcon() []byte {
	return iconData
}
