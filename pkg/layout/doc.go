// Package layout derives a remote control surface from an instrument.
//
// The surface is a grid eight buttons wide. Every interface group gets a
// one-row label followed by its buttons, two rows per row of buttons. A
// row of combination action controls closes the surface. Coordinates are
// fractions of the surface size.
package layout
