// Package analyzer implements the non-real-time spectrum path: audio blocks
// copied off the processing thread are stitched into a sliding sample window,
// windowed and transformed with a forward FFT, reduced to a log-magnitude
// frame, and finally mapped onto a log-frequency display polyline.
//
// Every cross-thread handoff goes through an spsc.Queue with drop-on-full
// semantics: the audio callback never blocks on analysis, and the display
// consumes paths latest-wins.
package analyzer
