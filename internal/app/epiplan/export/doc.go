// Package export hands rendered episodes to the outside world: printable PDF,
// downloaded files, the system mail composer and ID3 chapters of a recording.
package export
