package domain

// BoardExport bundles one board with everything it owns, for
// import/export.
type BoardExport struct {
	Board         Board          `json:"board"`
	Columns       []Column       `json:"columns"`
	Cards         []Card         `json:"cards"`
	Sprints       []Sprint       `json:"sprints"`
	ArchivedCards []ArchivedCard `json:"archived_cards"`
}

// AllBoardsExport is the export document for a whole workspace.
type AllBoardsExport struct {
	Boards []BoardExport `json:"boards"`
}
