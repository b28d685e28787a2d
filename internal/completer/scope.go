package completer

// ScopedRelation names one relation a column reference may resolve against.
// Table is the classifier's table name hint; Ref is what the user actually
// wrote, either the relation's own name or its alias.
type ScopedRelation struct {
	Table string
	Ref   string
}

// ScopedColumns resolves scope into a concrete column list. Each entry's
// reference name is escaped and looked up in the table map first, then the
// view map; a hit appends that relation's full column list, including the
// "*" sentinel when no real columns were ever registered. Entries matching
// neither map contribute nothing — the classifier is allowed to pass
// speculative scope hints. Scope order is preserved and duplicates are kept:
// a column shared by two joined relations appears twice, mirroring the
// ambiguous-column behavior the user would see in real SQL.
func (c *Catalog) ScopedColumns(scope []ScopedRelation) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var columns []string
	for _, rel := range scope {
		name := EscapeName(rel.Ref)

		// Tables and views cannot share a name, so check one at a time.
		if cols, ok := c.relations[Tables][name]; ok {
			columns = append(columns, cols...)
			continue
		}
		if cols, ok := c.relations[Views][name]; ok {
			columns = append(columns, cols...)
		}
	}
	return columns
}
