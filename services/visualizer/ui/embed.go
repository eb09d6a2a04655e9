// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package ui embeds the browser front end served under /ui.
package ui

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var files embed.FS

// FS returns the UI rooted at the static directory.
func FS() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		// static is embedded at build time; Sub cannot fail for a valid name.
		panic(err)
	}
	return http.FS(sub)
}
