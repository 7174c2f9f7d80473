// Package discovery advertises the bridge over mDNS/DNS-SD.
//
// The bridge registers one instance of the _osc._udp service. Control
// surfaces browsing for OSC services find it together with the port to
// send to. TXT records describe the bridge:
//
//	txtvers  TXT format version (1)
//	v        protocol version, "major.minor"
//	ch       MIDI control channel, 1..16
//	instr    instrument name the bridge looks for
//
// Clients must ignore unknown keys and reject an incompatible major
// version.
package discovery
