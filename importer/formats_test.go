package importer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/darianmavgo/loadsqlite/importer"
	_ "github.com/darianmavgo/loadsqlite/importer/all"

	"github.com/xuri/excelize/v2"
)

func TestLoadWorkbookMultipleSheets(t *testing.T) {
	dir := t.TempDir()
	xlsxPath := filepath.Join(dir, "report-2024.xlsx")

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Q1 Sales"); err != nil {
		t.Fatalf("failed to rename sheet: %v", err)
	}
	for cell, val := range map[string]string{"A1": "id", "B1": "amount", "A2": "1", "B2": "100"} {
		if err := f.SetCellValue("Q1 Sales", cell, val); err != nil {
			t.Fatalf("failed to set cell: %v", err)
		}
	}
	if _, err := f.NewSheet("Q2"); err != nil {
		t.Fatalf("failed to add sheet: %v", err)
	}
	for cell, val := range map[string]string{"A1": "id", "A2": "7", "A3": "8"} {
		if err := f.SetCellValue("Q2", cell, val); err != nil {
			t.Fatalf("failed to set cell: %v", err)
		}
	}
	if err := f.SaveAs(xlsxPath); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}
	f.Close()

	dbPath := filepath.Join(dir, "out.db")
	if err := importer.Load(dbPath, []string{xlsxPath}, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	db := openDB(t, dbPath)
	// Multi-sheet workbooks suffix the file ident with the sanitized sheet name
	if n := countRows(t, db, "report_2024_Q1_Sales"); n != 1 {
		t.Errorf("report_2024_Q1_Sales: got %d rows, want 1", n)
	}
	if n := countRows(t, db, "report_2024_Q2"); n != 2 {
		t.Errorf("report_2024_Q2: got %d rows, want 2", n)
	}
}

func TestLoadHTMLTables(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "summary.html")
	doc := `<html><body>
<table id="orders">
  <tr><th>id</th><th>total</th></tr>
  <tr><td>1</td><td>9.99</td></tr>
</table>
<table>
  <tr><th>city</th></tr>
  <tr><td>Oslo</td></tr>
  <tr><td>Bergen</td></tr>
</table>
</body></html>`
	if err := os.WriteFile(htmlPath, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write html: %v", err)
	}

	dbPath := filepath.Join(dir, "out.db")
	if err := importer.Load(dbPath, []string{htmlPath}, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	db := openDB(t, dbPath)
	if n := countRows(t, db, "summary_orders"); n != 1 {
		t.Errorf("summary_orders: got %d rows, want 1", n)
	}
	if n := countRows(t, db, "summary_table1"); n != 2 {
		t.Errorf("summary_table1: got %d rows, want 2", n)
	}
}

func TestLoadHTMLSingleTableUsesFileIdent(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "cities.html")
	doc := `<table id="whatever"><tr><th>city</th></tr><tr><td>Oslo</td></tr></table>`
	if err := os.WriteFile(htmlPath, []byte(doc), 0644); err != nil {
		t.Fatalf("failed to write html: %v", err)
	}

	dbPath := filepath.Join(dir, "out.db")
	if err := importer.Load(dbPath, []string{htmlPath}, nil); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	db := openDB(t, dbPath)
	if n := countRows(t, db, "cities"); n != 1 {
		t.Errorf("cities: got %d rows, want 1", n)
	}
}
