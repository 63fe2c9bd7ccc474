package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/darianmavgo/loadsqlite/importer/common"
)

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]common.Driver)
)

// Register makes a source driver available by the provided name.
// If Register is called twice with the same name or if driver is nil, it panics.
func Register(name string, driver common.Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("importer: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("importer: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

// Open opens a source by driver name and input reader.
func Open(driverName string, input io.Reader, config *common.SourceConfig) (common.Source, error) {
	driversMu.RLock()
	driver, ok := drivers[driverName]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("importer: unknown driver %q (forgotten import?)", driverName)
	}
	return driver.Open(input, config)
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// DriverName maps an input path to the driver that handles it. Anything that
// is not a known workbook or HTML extension is treated as delimited text.
func DriverName(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xls":
		return "excel"
	case ".html", ".htm":
		return "html"
	}
	return "csv"
}
