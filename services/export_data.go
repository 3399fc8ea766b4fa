package services

// ExportRow represents a single row in the Service BOQ export
// (activity block, service row, or floor allocation).
type ExportRow struct {
	Level       int    // 0 = activity block, 1 = service row, 2 = floor allocation
	Index       string // "1", "1.1", "1.1.1" etc
	Description string
	Quantity    int64
	Wastage     int64
	UOM         string
}

// ExportData holds all data needed for export.
type ExportData struct {
	Title           string
	ReferenceNumber string
	ProjectName     string
	SiteName        string
	WingName        string
	CategoryNames   []string
	CreatedDate     string
	Rows            []ExportRow
	TotalQuantity   int64
	TotalWastage    int64
}
