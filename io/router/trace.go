// SPDX-License-Identifier: Unlicense OR MIT

package router

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("router")
}
