// SPDX-License-Identifier: EPL-2.0

package speakers

import "errors"

var (
	ErrUnknownLayout           = errors.New("unknown loudspeaker layout")
	ErrUnsupportedLayoutFormat = errors.New("unsupported layout file format")
	ErrMalformedLayout         = errors.New("malformed layout")
)
