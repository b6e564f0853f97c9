// Package param holds the parameter model shared by the control surface and
// the audio engine. Parameter values live in atomics so the audio thread
// reads them lock-free while the control side writes; the registry tracks a
// dirty flag the engine polls to rebuild filter coefficients only when
// something actually changed.
package param
