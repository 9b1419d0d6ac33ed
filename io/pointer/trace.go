// SPDX-License-Identifier: Unlicense OR MIT

package pointer

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("pointer")
}
