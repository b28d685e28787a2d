package completer

// baseKeywords is the static keyword vocabulary every catalog starts from.
// It is never mutated; per-session additions go through ExtendKeywords so
// two catalogs can never observe each other's extensions.
var baseKeywords = []string{
	"ACCESS", "ADD", "ALL", "ALTER TABLE", "AND", "ANY", "AS",
	"ASC", "AUDIT", "BETWEEN", "BY", "CASE", "CHAR", "CHECK",
	"CLUSTER", "COLUMN", "COMMENT", "COMPRESS", "CONNECT", "COPY",
	"CREATE", "CURRENT", "DATABASE", "DATE", "DECIMAL", "DEFAULT",
	"DELETE FROM", "DELIMITER", "DESC", "DESCRIBE", "DISTINCT", "DROP",
	"ELSE", "ENCODING", "ESCAPE", "EXCLUSIVE", "EXISTS", "EXTENSION",
	"FILE", "FLOAT", "FOR", "FORMAT", "FORCE_QUOTE", "FORCE_NOT_NULL",
	"FREEZE", "FROM", "FULL", "FUNCTION", "GRANT", "GROUP BY",
	"HAVING", "HEADER", "IDENTIFIED", "IMMEDIATE", "IN", "INCREMENT",
	"INDEX", "INITIAL", "INSERT INTO", "INTEGER", "INTERSECT", "INTO",
	"IS", "JOIN", "LEFT", "LEVEL", "LIKE", "LIMIT", "LOCK", "LONG",
	"MAXEXTENTS", "MINUS", "MLSLABEL", "MODE", "MODIFY", "NOAUDIT",
	"NOCOMPRESS", "NOT", "NOWAIT", "NULL", "NUMBER", "OIDS", "OF",
	"OFFLINE", "ON", "ONLINE", "OPTION", "OR", "ORDER BY", "OUTER",
	"OWNER", "PCTFREE", "PRIMARY", "PRIOR", "PRIVILEGES", "QUOTE",
	"RAW", "RENAME", "RESOURCE", "REVOKE", "RIGHT", "ROW", "ROWID",
	"ROWNUM", "ROWS", "SELECT", "SESSION", "SET", "SHARE", "SIZE",
	"SMALLINT", "START", "SUCCESSFUL", "SYNONYM", "SYSDATE", "TABLE",
	"TEMPLATE", "THEN", "TO", "TRIGGER", "UID", "UNION", "UNIQUE",
	"UPDATE", "USE", "USER", "VALIDATE", "VALUES", "VARCHAR",
	"VARCHAR2", "VIEW", "WHEN", "WHENEVER", "WHERE", "WITH",
}

// baseFunctions is the static builtin function vocabulary. Schema-qualified
// functions discovered by introspection are registered on top of these.
var baseFunctions = []string{
	"AVG", "COUNT", "DISTINCT", "FIRST", "FORMAT", "LAST",
	"LCASE", "LEN", "MAX", "MIN", "MID", "NOW", "ROUND", "SUM", "TOP",
	"UCASE",
}
