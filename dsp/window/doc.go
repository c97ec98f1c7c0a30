// Package window generates the tapers used to truncate ideal sinc responses.
//
// Hamming is the default. Hann, Blackman, Kaiser and Rectangular are
// available for trading sidelobe leakage against main-lobe width.
package window
