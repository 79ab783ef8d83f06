// Package monitor is the sampling and drawing core of the bandwidth
// dashboard.
//
// A Sampler reads cumulative byte counters from a counters.Source and turns
// successive readings into bytes-per-second samples. Samples land in two
// fixed-size ring buffers (RX and TX) held by an InterfaceState; their size
// tracks the terminal width and changes only through Resize.
//
// Drawing goes through the Surface interface, so the same Painter output
// backs both the raw ANSI loop and the bubbletea front end:
//
//	row 0              RX graph, bars grow up from its bottom row
//	row GraphLines     TX graph, bars grow down from its top row
//	row 2*GraphLines+1 stats panel
//
// Engine ties the pieces together and is what the front ends drive.
package monitor
