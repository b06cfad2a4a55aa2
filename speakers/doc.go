// SPDX-License-Identifier: EPL-2.0

// Package speakers provides loudspeaker layouts: built-in presets and layout
// files in TOML, JSON or YAML.
//
// A TOML layout lists the positions in a table:
//
//	name = "studio"
//	bounds = [-30, 30]
//
//	[positions]
//	azimuth = [30, -30]
//	elevation = [0, 0]
//
// JSON and YAML use the same keys. JSON files may also give positions as a
// plain list of azimuths, as in
//
//	{"name": "Stereo", "height": false, "positions": [30, -30], "bounds": [-30, 30]}
package speakers
