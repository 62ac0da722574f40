package dto

// MasterImportResult resumen de una importación del maestro de categorías.
type MasterImportResult struct {
	BatchID           string `json:"batch_id"`
	Sheet             string `json:"sheet"`
	RowsProcessed     int    `json:"rows_processed"`
	CategoriesCreated int    `json:"categories_created"`
	CategoriesUpdated int    `json:"categories_updated"`
}

// SalesImportResult resumen de una importación del libro de ventas.
type SalesImportResult struct {
	BatchID        string   `json:"batch_id"`
	ReportDate     string   `json:"report_date"` // YYYY-MM-DD
	Sheet          string   `json:"sheet"`
	Shops          []string `json:"shops"`
	RowsProcessed  int      `json:"rows_processed"`
	RecordsWritten int      `json:"records_written"`
	RecordsPruned  int64    `json:"records_pruned"`
	SkippedRows    int      `json:"skipped_rows"`
}
