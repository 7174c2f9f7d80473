// Package definition parses Aeolus instrument definition files.
//
// An instrument lives in its own directory under the Aeolus stops
// directory and is described by a line-oriented file named "definition":
//
//	/tuning      440.0  5
//	/manual/new  Great
//	/divis/new   II  1  1
//	/rank        C  0  principal8.ae0
//	/divis/end
//	/group/new   Great
//	/stop        1  1  1
//	/group/end
//	/instr/end
//
// Rank files are resolved against the stops directory, i.e. the parent of
// the instrument directory. Stop labels and mnemonics are read from the
// binary header of the rank file.
package definition
