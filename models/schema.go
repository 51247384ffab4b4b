package models

// ColumnInfo describes one column as reported by the database catalog.
type ColumnInfo struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nullable   bool   `json:"nullable"`
	PrimaryKey bool   `json:"primary_key"`
}

// Relationship is a foreign-key edge from a column of the owning table.
type Relationship struct {
	FromColumn string `json:"from_column"`
	ToTable    string `json:"to_table"`
	ToColumn   string `json:"to_column"`
}

// TableInfo stores table information including schema and relationships.
type TableInfo struct {
	Name          string         `json:"name"`
	Columns       []ColumnInfo   `json:"columns"`
	Relationships []Relationship `json:"relationships,omitempty"`
}

// Schema is the full database description, built once at startup.
// Tables are sorted by name so prompt rendering is deterministic.
type Schema struct {
	Tables []TableInfo `json:"tables"`
}

// Table returns the named table, or nil if unknown.
func (s *Schema) Table(name string) *TableInfo {
	for i := range s.Tables {
		if s.Tables[i].Name == name {
			return &s.Tables[i]
		}
	}
	return nil
}
