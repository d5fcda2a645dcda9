// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package templates embeds the HTML templates and static assets of the web UI.
package templates

import "embed"

// FS holds base.html, pages/, partials/ and static/.
//
//go:embed base.html pages/*.html partials/*.html static
var FS embed.FS
