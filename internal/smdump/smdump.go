// Package smdump writes and reads recorded source maps for debugging.
package smdump

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"

	"wesl/internal/sourcemap"
)

// Format selects the dump encoding.
type Format uint8

const (
	FormatText Format = iota
	FormatJSON
	FormatMsgpack
)

func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatJSON:
		return "json"
	case FormatMsgpack:
		return "msgpack"
	default:
		return "unknown"
	}
}

// ParseFormat converts a string to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	default:
		return FormatText, fmt.Errorf("unknown dump format %q (expected: text|json|msgpack)", s)
	}
}

// FormatForPath guesses the format from a file extension; text otherwise.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".mp", ".msgpack":
		return FormatMsgpack
	default:
		return FormatText
	}
}

// Write encodes snap to w.
func Write(w io.Writer, snap sourcemap.Snapshot, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(&snap)
	case FormatText:
		return writeText(w, snap)
	default:
		return fmt.Errorf("unknown dump format %d", format)
	}
}

// Read decodes a JSON or msgpack dump. Text dumps are one-way.
func Read(r io.Reader, format Format) (sourcemap.Snapshot, error) {
	var snap sourcemap.Snapshot
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&snap); err != nil {
			return sourcemap.Snapshot{}, fmt.Errorf("decode json dump: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
			return sourcemap.Snapshot{}, fmt.Errorf("decode msgpack dump: %w", err)
		}
	default:
		return sourcemap.Snapshot{}, fmt.Errorf("cannot read %s dumps", format)
	}
	return snap, nil
}

// ReadMap decodes a dump and restores the map.
func ReadMap(r io.Reader, format Format) (*sourcemap.BasicSourceMap, error) {
	snap, err := Read(r, format)
	if err != nil {
		return nil, err
	}
	return snap.Restore()
}

func writeText(w io.Writer, snap sourcemap.Snapshot) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "sources: %d\n", len(snap.Sources))
	for _, s := range snap.Sources {
		display := s.Display
		if display == "" {
			display = "-"
		}
		fmt.Fprintf(bw, "  %-32s %-24s %6d bytes\n", s.Module.ModulePath(), display, len(s.Text))
	}
	fmt.Fprintf(bw, "decls: %d\n", len(snap.Decls))
	for _, d := range snap.Decls {
		fmt.Fprintf(bw, "  %-32s -> %s::%s\n", d.Mangled, d.Module.ModulePath(), d.Decl)
	}
	if snap.Default != nil {
		fmt.Fprintf(bw, "default: %d bytes\n", len(*snap.Default))
	} else {
		fmt.Fprintln(bw, "default: none")
	}
	return bw.Flush()
}
