// Package xmltext reads and writes XML fragments as a flat stream of events.
//
// The decoder keeps the exact source bytes of every event so unmodified
// events can be written back byte for byte. Multiple top-level elements and
// top-level text are accepted; namespaces and DTDs are not interpreted.
package xmltext
