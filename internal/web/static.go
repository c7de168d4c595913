package web

import "embed"

// StaticFS holds the built frontend. The web build pipeline copies its output
// into dist/ before `go build`.
//
//go:embed dist
var StaticFS embed.FS
