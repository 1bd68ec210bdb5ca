// Released under an MIT license. See LICENSE.

package commands

import (
	"github.com/michaelmacinnis/nanscheme/internal/common/store"
	"github.com/michaelmacinnis/nanscheme/internal/common/value"
)

func isBoolean(_ *store.T, v value.T) bool {
	return value.IsBox(value.Boolean, v)
}

func isError(_ *store.T, v value.T) bool {
	return value.IsBox(value.Error, v)
}
