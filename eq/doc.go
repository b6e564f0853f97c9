// Package eq implements the three-band parametric equalizer core: a low-cut
// Butterworth cascade, a peaking band, and a high-cut Butterworth cascade
// applied in series per channel.
//
// A Chain owns the filter state for one channel. Coefficients are rebuilt
// from a Settings snapshot once per processed block; delay-line state is
// preserved across coefficient swaps so parameter changes do not click.
// The same Chain type also drives the analytic response curve, evaluated
// from coefficients only, without touching any filter state.
package eq
