// Released under an MIT license. See LICENSE.

// Package boot provides the library procedures written in Scheme itself.
package boot

import _ "embed" // Blank import required by embed.

//go:embed boot.scm
var script string //nolint:gochecknoglobals

// Script returns the boot script.
func Script() string {
	return script
}
