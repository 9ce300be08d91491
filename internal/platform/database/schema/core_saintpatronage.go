package schema

// CoreSaintPatronageTable represents the 'core.saint_patronage' table
type CoreSaintPatronageTable struct {
	Table      string
	ID         string
	SaintID    string
	TargetKind string
	TargetID   string
	CreatedAt  string

	// TargetKey is the unique constraint on (saint_id, target_kind, target_id).
	TargetKey string
}

// CoreSaintPatronage is the schema definition for core.saint_patronage
var CoreSaintPatronage = CoreSaintPatronageTable{
	Table:      "core.saint_patronage",
	ID:         "id",
	SaintID:    "saint_id",
	TargetKind: "target_kind",
	TargetID:   "target_id",
	CreatedAt:  "created_at",
	TargetKey:  "saint_patronage_target_key",
}

func (t CoreSaintPatronageTable) Columns() []string {
	return []string{t.ID, t.SaintID, t.TargetKind, t.TargetID, t.CreatedAt}
}
