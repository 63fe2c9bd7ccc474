package all

import (
	// Import all the source drivers so they register themselves
	_ "github.com/darianmavgo/loadsqlite/importer/csv"
	_ "github.com/darianmavgo/loadsqlite/importer/excel"
	_ "github.com/darianmavgo/loadsqlite/importer/html"
)
