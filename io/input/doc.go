// SPDX-License-Identifier: Unlicense OR MIT

/*
Package input converts the raw mouse and touch events of a window system
or input device into pointer events.

The [Normalizer] assigns pointer ids, sequence indices and primacy and
fills in the properties a device doesn't report. The [Coalescer] merges
the moves of a frame into one event per pointer and attaches predicted
samples computed by a [Predictor].
*/
package input
