// Package design computes biquad coefficients for the EQ's filter bands:
// RBJ cookbook lowpass, highpass, and peaking sections, and Butterworth
// cascade factoring for the cut bands.
//
// Designers return zero-valued coefficients for out-of-range inputs
// (freq outside (0, Nyquist), non-finite values) rather than an error;
// callers that guarantee validated inputs can ignore this case.
package design
