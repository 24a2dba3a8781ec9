//go:build cgo

package graph

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore is a Store backed by an embedded KuzuDB database.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

var _ Store = (*KuzuStore)(nil)

// NewKuzuStore opens an in-memory KuzuDB store.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore opens (or creates) an on-disk KuzuDB store at dbPath.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: mkdir %s: %w", filepath.Dir(dbPath), err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	db, err := kuzu.OpenDatabase(path, kuzu.DefaultSystemConfig())
	if err != nil {
		return nil, fmt.Errorf("kuzu: open %s: %w", path, err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: connect %s: %w", path, err)
	}
	return &KuzuStore{db: db, conn: conn}, nil
}

// Close releases the connection and the database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	if s.db != nil {
		s.db.Close()
		s.db = nil
	}
	return nil
}

// nodeTables holds the node DDL. Relationship tables are derived from
// relTables and created afterwards.
var nodeTables = []string{
	`CREATE NODE TABLE IF NOT EXISTS Type(id STRING, name STRING, namespace STRING, kind STRING, summary STRING, PRIMARY KEY(id))`,
	`CREATE NODE TABLE IF NOT EXISTS Method(id STRING, type_id STRING, name STRING, summary STRING, PRIMARY KEY(id))`,
	`CREATE NODE TABLE IF NOT EXISTS Cluster(name STRING, cohesion_score DOUBLE, PRIMARY KEY(name))`,
}

// relTable maps an edge kind to the relationship table storing it. Every
// relationship starts at a Type; to and key name the target table and its
// primary key column.
type relTable struct {
	name string
	kind EdgeKind
	to   string
	key  string
}

var relTables = []relTable{
	{"EXTENDS", EdgeKindExtends, "Type", "id"},
	{"IMPLEMENTS", EdgeKindImplements, "Type", "id"},
	{"DEPENDS_ON", EdgeKindDependsOn, "Type", "id"},
	{"DECLARES", EdgeKindDeclares, "Method", "id"},
	{"BELONGS_TO", EdgeKindBelongs, "Cluster", "name"},
}

func relTableFor(kind EdgeKind) (relTable, bool) {
	for _, rt := range relTables {
		if rt.kind == kind {
			return rt, true
		}
	}
	return relTable{}, false
}

// dependencyRels is the relationship pattern followed by traversal.
const dependencyRels = "EXTENDS|IMPLEMENTS|DEPENDS_ON"

// InitSchema creates the node and relationship tables if missing.
func (s *KuzuStore) InitSchema(_ context.Context) error {
	stmts := append([]string(nil), nodeTables...)
	for _, rt := range relTables {
		stmts = append(stmts, fmt.Sprintf("CREATE REL TABLE IF NOT EXISTS %s(FROM Type TO %s)", rt.name, rt.to))
	}
	for _, stmt := range stmts {
		if _, err := s.run(stmt, nil); err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
	}
	return nil
}

// AddType inserts a Type node.
func (s *KuzuStore) AddType(_ context.Context, node TypeNode) error {
	_, err := s.run(
		"CREATE (:Type {id: $id, name: $name, namespace: $ns, kind: $kind, summary: $summary})",
		map[string]any{
			"id":      node.ID,
			"name":    node.Name,
			"ns":      node.Namespace,
			"kind":    string(node.Kind),
			"summary": node.Summary,
		})
	return err
}

// AddMethod inserts a Method node.
func (s *KuzuStore) AddMethod(_ context.Context, node MethodNode) error {
	_, err := s.run(
		"CREATE (:Method {id: $id, type_id: $tid, name: $name, summary: $summary})",
		map[string]any{"id": node.ID, "tid": node.TypeID, "name": node.Name, "summary": node.Summary})
	return err
}

// AddCluster inserts a Cluster node.
func (s *KuzuStore) AddCluster(_ context.Context, node ClusterNode) error {
	_, err := s.run(
		"CREATE (:Cluster {name: $name, cohesion_score: $score})",
		map[string]any{"name": node.Name, "score": node.CohesionScore})
	return err
}

// AddEdge links two existing nodes. Both endpoints must already be stored.
func (s *KuzuStore) AddEdge(_ context.Context, edge Edge) error {
	rt, ok := relTableFor(edge.Kind)
	if !ok {
		return fmt.Errorf("kuzu: unsupported edge kind %q", edge.Kind)
	}
	cypher := fmt.Sprintf("MATCH (a:Type {id: $src}), (b:%s {%s: $dst}) CREATE (a)-[:%s]->(b)", rt.to, rt.key, rt.name)
	_, err := s.run(cypher, map[string]any{"src": edge.SourceID, "dst": edge.TargetID})
	return err
}

const typeColumns = "t.id, t.name, t.namespace, t.kind, t.summary"

// GetType returns the type with the given ID, or nil when absent.
func (s *KuzuStore) GetType(_ context.Context, id string) (*TypeNode, error) {
	rows, err := s.run("MATCH (t:Type {id: $id}) RETURN "+typeColumns, map[string]any{"id": id})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	t := typeFromRow(rows[0])
	return &t, nil
}

// GetMethods returns the methods declared by typeID, ordered by ID.
func (s *KuzuStore) GetMethods(_ context.Context, typeID string) ([]MethodNode, error) {
	rows, err := s.run(
		"MATCH (:Type {id: $id})-[:DECLARES]->(m:Method) RETURN m.id, m.type_id, m.name, m.summary ORDER BY m.id",
		map[string]any{"id": typeID})
	if err != nil {
		return nil, err
	}
	out := make([]MethodNode, len(rows))
	for i, r := range rows {
		out[i] = MethodNode{ID: str(r[0]), TypeID: str(r[1]), Name: str(r[2]), Summary: str(r[3])}
	}
	return out, nil
}

// QueryTypes returns types whose name contains q, ignoring case, ordered by
// ID. An empty kind matches every kind; limit <= 0 means no limit.
func (s *KuzuStore) QueryTypes(_ context.Context, q string, kind TypeKind, limit int) ([]TypeNode, error) {
	cypher := "MATCH (t:Type) WHERE ($q = '' OR lower(t.name) CONTAINS lower($q)) AND ($kind = '' OR t.kind = $kind) RETURN " +
		typeColumns + " ORDER BY t.id"
	params := map[string]any{"q": q, "kind": string(kind)}
	if limit > 0 {
		cypher += " LIMIT $lim"
		params["lim"] = int64(limit)
	}
	rows, err := s.run(cypher, params)
	if err != nil {
		return nil, err
	}
	return typesFromRows(rows), nil
}

// GetAllTypes returns every type ordered by ID.
func (s *KuzuStore) GetAllTypes(_ context.Context) ([]TypeNode, error) {
	rows, err := s.run("MATCH (t:Type) RETURN "+typeColumns+" ORDER BY t.id", nil)
	if err != nil {
		return nil, err
	}
	return typesFromRows(rows), nil
}

// GetDependencies walks dependency edges from typeID in the given direction,
// up to maxDepth hops.
func (s *KuzuStore) GetDependencies(_ context.Context, typeID string, direction Direction, maxDepth int) ([]DependencyChain, error) {
	next, err := s.neighbors(direction)
	if err != nil {
		return nil, err
	}
	return walk(typeID, maxDepth, next)
}

// neighbors returns a neighbour lookup querying one hop of dependency edges.
func (s *KuzuStore) neighbors(direction Direction) (neighborFunc, error) {
	var cypher string
	switch direction {
	case DirectionUpstream:
		cypher = "MATCH (:Type {id: $id})-[:" + dependencyRels + "]->(n:Type) RETURN DISTINCT n.id ORDER BY n.id"
	case DirectionDownstream:
		cypher = "MATCH (n:Type)-[:" + dependencyRels + "]->(:Type {id: $id}) RETURN DISTINCT n.id ORDER BY n.id"
	default:
		return nil, fmt.Errorf("kuzu: unknown direction %q", direction)
	}
	return func(id string) ([]string, error) {
		rows, err := s.run(cypher, map[string]any{"id": id})
		if err != nil {
			return nil, err
		}
		ids := make([]string, len(rows))
		for i, r := range rows {
			ids[i] = str(r[0])
		}
		return ids, nil
	}, nil
}

// AssessImpact computes which declared types are affected by changing the
// given types.
func (s *KuzuStore) AssessImpact(_ context.Context, changedTypes []string) (*ImpactResult, error) {
	declared, err := s.count("MATCH (t:Type) WHERE t.kind <> 'external' RETURN count(t)")
	if err != nil {
		return nil, err
	}
	dependents, err := s.neighbors(DirectionDownstream)
	if err != nil {
		return nil, err
	}
	return impact(changedTypes, dependents, declared)
}

// GetClusters returns every cluster with its members, ordered by name.
func (s *KuzuStore) GetClusters(_ context.Context) ([]ClusterNode, error) {
	rows, err := s.run(
		`MATCH (c:Cluster) OPTIONAL MATCH (t:Type)-[:BELONGS_TO]->(c)
		 RETURN c.name, c.cohesion_score, t.id ORDER BY c.name, t.id`, nil)
	if err != nil {
		return nil, err
	}
	var out []ClusterNode
	for _, r := range rows {
		name := str(r[0])
		if len(out) == 0 || out[len(out)-1].Name != name {
			out = append(out, ClusterNode{Name: name, CohesionScore: float(r[1]), Members: []string{}})
		}
		if r[2] != nil {
			c := &out[len(out)-1]
			c.Members = append(c.Members, str(r[2]))
		}
	}
	return out, nil
}

// GetAllEdges returns the edges of every relationship table.
func (s *KuzuStore) GetAllEdges(_ context.Context) ([]Edge, error) {
	var edges []Edge
	for _, rt := range relTables {
		rows, err := s.run(fmt.Sprintf("MATCH (a:Type)-[:%s]->(b:%s) RETURN a.id, b.%s", rt.name, rt.to, rt.key), nil)
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			edges = append(edges, Edge{SourceID: str(r[0]), TargetID: str(r[1]), Kind: rt.kind})
		}
	}
	return edges, nil
}

// Stats counts the nodes per table and the edges across all relationships.
func (s *KuzuStore) Stats(_ context.Context) (*GraphStats, error) {
	var st GraphStats
	counts := []struct {
		cypher string
		dst    *int
	}{
		{"MATCH (n:Type) RETURN count(n)", &st.TypeCount},
		{"MATCH (n:Method) RETURN count(n)", &st.MethodCount},
		{"MATCH (n:Cluster) RETURN count(n)", &st.ClusterCount},
		{"MATCH ()-[r]->() RETURN count(r)", &st.EdgeCount},
	}
	for _, c := range counts {
		n, err := s.count(c.cypher)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return &st, nil
}

// run executes a Cypher statement and returns its rows in column order.
// Statements with parameters go through a prepared statement.
func (s *KuzuStore) run(cypher string, params map[string]any) ([][]any, error) {
	var (
		res *kuzu.QueryResult
		err error
	)
	if params == nil {
		res, err = s.conn.Query(cypher)
	} else {
		stmt, perr := s.conn.Prepare(cypher)
		if perr != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", perr)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next row: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: read row: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

// count runs a single-value count query.
func (s *KuzuStore) count(cypher string) (int, error) {
	rows, err := s.run(cypher, nil)
	if err != nil || len(rows) == 0 || len(rows[0]) == 0 {
		return 0, err
	}
	n, _ := rows[0][0].(int64)
	return int(n), nil
}

// typeFromRow decodes a row selected with typeColumns.
func typeFromRow(r []any) TypeNode {
	return TypeNode{
		ID:        str(r[0]),
		Name:      str(r[1]),
		Namespace: str(r[2]),
		Kind:      TypeKind(str(r[3])),
		Summary:   str(r[4]),
	}
}

func typesFromRows(rows [][]any) []TypeNode {
	out := make([]TypeNode, len(rows))
	for i, r := range rows {
		out[i] = typeFromRow(r)
	}
	return out
}

// str and float read STRING and DOUBLE columns; NULL reads as zero.
func str(v any) string {
	s, _ := v.(string)
	return s
}

func float(v any) float64 {
	f, _ := v.(float64)
	return f
}
