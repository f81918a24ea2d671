package neo4jstore

import (
	"fmt"
	"strings"
)

// Cypher statement builders. Labels cannot be parameterized in Cypher, so
// index names are interpolated as backtick-quoted labels; everything else
// binds through parameters.

// escapeLabel quotes an index name for use as a label.
func escapeLabel(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// exactMatchCypher matches labeled nodes whose property equals $value.
func exactMatchCypher(indexName string) string {
	return fmt.Sprintf(
		"MATCH (n:%s) WHERE n[$property] = $value RETURN id(n) AS id ORDER BY id",
		escapeLabel(indexName))
}

// rangeCypher matches labeled nodes whose property lies in the inclusive
// [$from, $to] range.
func rangeCypher(indexName string) string {
	return fmt.Sprintf(
		"MATCH (n:%s) WHERE n[$property] >= $from AND n[$property] <= $to RETURN id(n) AS id ORDER BY id",
		escapeLabel(indexName))
}

// fulltextCypher queries a fulltext index by name with a raw query string.
const fulltextCypher = "CALL db.index.fulltext.queryNodes($index, $query) YIELD node RETURN id(node) AS id"
