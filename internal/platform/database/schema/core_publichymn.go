package schema

// PublicHymnTable represents the 'core.publichymn' table
type PublicHymnTable struct {
	Table       string
	ID          string
	Number      string
	Name        string
	SubmittedBy string
	CreatedAt   string
	UpdatedAt   string
}

// PublicHymn is the schema definition for core.publichymn
var PublicHymn = PublicHymnTable{
	Table:       "core.publichymn",
	ID:          "id",
	Number:      "number",
	Name:        "name",
	SubmittedBy: "submittedby",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t PublicHymnTable) Columns() []string {
	return []string{t.ID, t.Number, t.Name, t.SubmittedBy, t.CreatedAt, t.UpdatedAt}
}
