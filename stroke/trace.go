// SPDX-License-Identifier: Unlicense OR MIT

package stroke

import "github.com/npillmayer/schuko/tracing"

func tracer() tracing.Trace {
	return tracing.Select("stroke")
}
