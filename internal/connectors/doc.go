// Package connectors holds the adapters that bring documents in from
// outside the process. The filesystem connector loads files chosen on the
// command line or in the picker, and watches drop folders.
package connectors
