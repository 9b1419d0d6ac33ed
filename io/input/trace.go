// SPDX-License-Identifier: Unlicense OR MIT

package input

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("input")
}
