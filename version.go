package workbench

import _ "embed"

// Version is the release string from the VERSION file, with its trailing newline.
//
//go:embed VERSION
var Version string
