//go:build linux

package usbid

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/ardnew/softmatrix/pkg"
)

// DefaultPaths lists where distributions install usb.ids.
var DefaultPaths = []string{
	"/usr/share/hwdata/usb.ids",
	"/var/lib/usbutils/usb.ids",
	"/usr/share/misc/usb.ids",
}

// Table maps vendor and product IDs to names.
type Table struct {
	vendors  map[uint16]string
	products map[uint32]string
}

func key(vid, pid uint16) uint32 { return uint32(vid)<<16 | uint32(pid) }

// Parse reads a usb.ids file. Only the vendor and product section is kept;
// class and language lists after it are skipped.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{vendors: map[uint16]string{}, products: map[uint32]string{}}
	var vendor uint16
	inVendor := false

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || line[0] == '#' {
			continue
		}
		if line[0] != '\t' {
			id, name, ok := entry(line)
			inVendor = ok
			if ok {
				vendor = id
				t.vendors[id] = name
			}
			continue
		}
		if !inVendor || strings.HasPrefix(line, "\t\t") {
			continue
		}
		if id, name, ok := entry(line[1:]); ok {
			t.products[key(vendor, id)] = name
		}
	}
	return t, sc.Err()
}

// entry splits "xxxx  Name".
func entry(line string) (uint16, string, bool) {
	if len(line) < 6 || line[4] != ' ' {
		return 0, "", false
	}
	id, err := strconv.ParseUint(line[:4], 16, 16)
	if err != nil {
		return 0, "", false
	}
	return uint16(id), strings.TrimSpace(line[5:]), true
}

// Vendor returns the name of vid, or "".
func (t *Table) Vendor(vid uint16) string { return t.vendors[vid] }

// Product returns the name of pid under vid, or "".
func (t *Table) Product(vid, pid uint16) string { return t.products[key(vid, pid)] }

// Load parses the first readable file in paths. It returns an empty table
// when none can be read.
func Load(paths ...string) *Table {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		t, err := Parse(f)
		f.Close()
		if err != nil {
			pkg.LogWarn(pkg.ComponentHAL, "usb.ids truncated", "path", path, "error", err)
		}
		return t
	}
	return &Table{vendors: map[uint16]string{}, products: map[uint32]string{}}
}

var system = sync.OnceValue(func() *Table { return Load(DefaultPaths...) })

// Lookup names a device from the system database.
func Lookup(vid, pid uint16) (vendor, product string) {
	t := system()
	return t.Vendor(vid), t.Product(vid, pid)
}
