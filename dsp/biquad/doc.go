// Package biquad implements second-order IIR filter sections (biquads) in
// Direct Form II Transposed, plus frequency-response evaluation of their
// coefficients.
//
// A Section carries both coefficients and delay-line state. Coefficients may
// be replaced between blocks without resetting the state, so a running filter
// can track parameter changes without output discontinuities.
package biquad
