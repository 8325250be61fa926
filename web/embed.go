// Package web provides embedded assets for the moodtunes service.
package web

import "embed"

// CatalogFS contains the default playlist catalog.
//
//go:embed catalog/playlists.yaml
var CatalogFS embed.FS

// CatalogFile is the path of the default catalog inside CatalogFS.
const CatalogFile = "catalog/playlists.yaml"
