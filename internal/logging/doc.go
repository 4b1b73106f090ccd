// Package logging provides the logging interface used by the kernel's
// ambient components. It abstracts the backend (zerolog or the standard
// log package) behind Logger and structured Field values. The arithmetic
// hot paths never log.
package logging
