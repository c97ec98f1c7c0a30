// Package fir provides a direct-form FIR filter runtime and the explicit
// zero-stuff / decimate building blocks of a rational rate changer.
//
// A [Filter] applies a set of pre-computed coefficients to an input stream
// using a circular-buffer delay line. [Filter.UpFirDn] chains zero-stuffing,
// filtering and decimation literally; it costs L times the work of the
// polyphase path in dsp/resample and serves as the reference for it.
//
// Coefficient design lives in dsp/filter/sinc.
package fir
