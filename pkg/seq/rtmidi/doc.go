// Package rtmidi provides a seq.Transport over gomidi's rtmidi driver.
// It needs cgo and the ALSA headers; only the aeolus-osc binary imports it.
package rtmidi
