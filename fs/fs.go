// Package appfs exposes the embedded application assets: database
// migrations, web and email templates, and static files.
package appfs

import "embed"

//go:embed migrations all:assets
var FS embed.FS
