package domain

import (
	"time"

	"github.com/google/uuid"

	"kanban/internal/core"
)

// EdgeType is the relationship carried by a graph edge.
type EdgeType string

const (
	// EdgeBlocks means the source must complete before the target can
	// start. Blocks edges form a DAG; insertions that would close a
	// cycle are rejected.
	EdgeBlocks EdgeType = "Blocks"
	// EdgeRelatesTo is an informational association. Cycles are allowed.
	EdgeRelatesTo EdgeType = "RelatesTo"
)

// RequiresDAG reports whether insertions of this type are cycle-checked.
func (t EdgeType) RequiresDAG() bool { return t == EdgeBlocks }

// DefaultDirection is the direction edges of this type are created with.
func (t EdgeType) DefaultDirection() EdgeDirection {
	if t == EdgeRelatesTo {
		return Bidirectional
	}
	return Directed
}

// EdgeDirection distinguishes one-way from mutual relationships.
type EdgeDirection string

const (
	Directed      EdgeDirection = "Directed"
	Bidirectional EdgeDirection = "Bidirectional"
)

// Edge is a typed, optionally weighted connection between two nodes.
// Archived edges stay in the set but are excluded from traversal.
type Edge struct {
	Source     uuid.UUID     `json:"source"`
	Target     uuid.UUID     `json:"target"`
	Type       EdgeType      `json:"edge_type"`
	Direction  EdgeDirection `json:"direction"`
	Weight     *float64      `json:"weight,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	ArchivedAt *time.Time    `json:"archived_at,omitempty"`
}

// IsActive reports whether the edge participates in traversal.
func (e *Edge) IsActive() bool { return e.ArchivedAt == nil }

// Involves reports whether the edge touches the node at either end.
func (e *Edge) Involves(node uuid.UUID) bool {
	return e.Source == node || e.Target == node
}

// Connects reports whether the edge links a to b, honouring direction.
func (e *Edge) Connects(a, b uuid.UUID) bool {
	if e.Source == a && e.Target == b {
		return true
	}
	return e.Direction == Bidirectional && e.Source == b && e.Target == a
}

// sameTuple reports identity on the (source, target, type, direction)
// tuple, the only persisted significance an edge has.
func (e *Edge) sameTuple(other *Edge) bool {
	return e.Source == other.Source &&
		e.Target == other.Target &&
		e.Type == other.Type &&
		e.Direction == other.Direction
}

// CardGraph is the edge set between cards.
type CardGraph struct {
	Edges []Edge `json:"edges"`
}

// DependencyGraph groups the per-entity-type edge sets. Only card edges
// exist today; the container leaves room for sprint or board graphs.
type DependencyGraph struct {
	Cards CardGraph `json:"cards"`
}

// AddEdge inserts an edge of the given type between two nodes. Inserting
// a duplicate tuple is a no-op. Self references are rejected, and a
// cycle-forbidden type is rejected when a path from target back to source
// already exists in that type's subgraph.
func (g *CardGraph) AddEdge(source, target uuid.UUID, edgeType EdgeType, now time.Time) error {
	if source == target {
		return core.Validationf("edge cannot reference the same node %s on both ends", source)
	}
	edge := Edge{
		Source:    source,
		Target:    target,
		Type:      edgeType,
		Direction: edgeType.DefaultDirection(),
		CreatedAt: now,
	}
	for i := range g.Edges {
		if g.Edges[i].sameTuple(&edge) {
			return nil
		}
	}
	if edgeType.RequiresDAG() && g.wouldCreateCycle(edgeType, source, target) {
		return core.Validationf("adding %s edge %s -> %s would create a cycle", edgeType, source, target)
	}
	g.Edges = append(g.Edges, edge)
	return nil
}

// RemoveEdge deletes all edges connecting the two nodes. Returns whether
// anything was removed.
func (g *CardGraph) RemoveEdge(source, target uuid.UUID) bool {
	before := len(g.Edges)
	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if !e.Connects(source, target) {
			kept = append(kept, e)
		}
	}
	g.Edges = kept
	return len(g.Edges) < before
}

// ArchiveEdge archives all edges connecting the two nodes.
func (g *CardGraph) ArchiveEdge(source, target uuid.UUID, now time.Time) bool {
	archived := false
	for i := range g.Edges {
		if g.Edges[i].Connects(source, target) && g.Edges[i].IsActive() {
			t := now
			g.Edges[i].ArchivedAt = &t
			archived = true
		}
	}
	return archived
}

// UnarchiveEdge reactivates all edges connecting the two nodes.
func (g *CardGraph) UnarchiveEdge(source, target uuid.UUID) bool {
	restored := false
	for i := range g.Edges {
		if g.Edges[i].Connects(source, target) && !g.Edges[i].IsActive() {
			g.Edges[i].ArchivedAt = nil
			restored = true
		}
	}
	return restored
}

// RemoveNode deletes every edge touching the node. Used by delete cascades.
func (g *CardGraph) RemoveNode(node uuid.UUID) {
	kept := g.Edges[:0]
	for _, e := range g.Edges {
		if !e.Involves(node) {
			kept = append(kept, e)
		}
	}
	g.Edges = kept
}

// ArchiveNode archives every active edge touching the node.
func (g *CardGraph) ArchiveNode(node uuid.UUID, now time.Time) {
	for i := range g.Edges {
		if g.Edges[i].Involves(node) && g.Edges[i].IsActive() {
			t := now
			g.Edges[i].ArchivedAt = &t
		}
	}
}

// UnarchiveNode reactivates every edge touching the node.
func (g *CardGraph) UnarchiveNode(node uuid.UUID) {
	for i := range g.Edges {
		if g.Edges[i].Involves(node) {
			g.Edges[i].ArchivedAt = nil
		}
	}
}

// Blockers returns the sources of active Blocks edges into the node.
func (g *CardGraph) Blockers(node uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.IsActive() && e.Type == EdgeBlocks && e.Target == node {
			out = append(out, e.Source)
		}
	}
	return out
}

// BlockedBy returns the targets of active Blocks edges out of the node.
func (g *CardGraph) BlockedBy(node uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.IsActive() && e.Type == EdgeBlocks && e.Source == node {
			out = append(out, e.Target)
		}
	}
	return out
}

// Related returns nodes joined to this one by an active RelatesTo edge.
func (g *CardGraph) Related(node uuid.UUID) []uuid.UUID {
	var out []uuid.UUID
	for i := range g.Edges {
		e := &g.Edges[i]
		if !e.IsActive() || e.Type != EdgeRelatesTo {
			continue
		}
		switch node {
		case e.Source:
			out = append(out, e.Target)
		case e.Target:
			out = append(out, e.Source)
		}
	}
	return out
}

// EdgeCount returns the total edge count, archived included.
func (g *CardGraph) EdgeCount() int { return len(g.Edges) }

// ActiveEdgeCount returns the count of edges participating in traversal.
func (g *CardGraph) ActiveEdgeCount() int {
	n := 0
	for i := range g.Edges {
		if g.Edges[i].IsActive() {
			n++
		}
	}
	return n
}

// adjacency builds the active-edge adjacency map, optionally filtered to
// one edge type. Bidirectional edges contribute both directions.
func (g *CardGraph) adjacency(only *EdgeType) map[uuid.UUID][]uuid.UUID {
	adj := make(map[uuid.UUID][]uuid.UUID)
	for i := range g.Edges {
		e := &g.Edges[i]
		if !e.IsActive() {
			continue
		}
		if only != nil && e.Type != *only {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
		if e.Direction == Bidirectional {
			adj[e.Target] = append(adj[e.Target], e.Source)
		}
	}
	return adj
}

// wouldCreateCycle checks, within the subgraph of one edge type, whether
// a path from target back to source already exists.
func (g *CardGraph) wouldCreateCycle(edgeType EdgeType, source, target uuid.UUID) bool {
	adj := g.adjacency(&edgeType)
	return hasPath(adj, target, source)
}

// HasCycle runs a DFS cycle check over the active subgraph of one type.
// Self-test helper; the write path relies on per-insert checks.
func (g *CardGraph) HasCycle(edgeType EdgeType) bool {
	adj := g.adjacency(&edgeType)
	visited := make(map[uuid.UUID]bool)
	onStack := make(map[uuid.UUID]bool)
	for node := range adj {
		if !visited[node] && cycleDFS(adj, node, visited, onStack) {
			return true
		}
	}
	return false
}

// ReachableFrom returns the BFS closure over active edges, start included.
func (g *CardGraph) ReachableFrom(start uuid.UUID) map[uuid.UUID]bool {
	adj := g.adjacency(nil)
	reached := map[uuid.UUID]bool{start: true}
	queue := []uuid.UUID{start}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for _, next := range adj[node] {
			if !reached[next] {
				reached[next] = true
				queue = append(queue, next)
			}
		}
	}
	return reached
}

func hasPath(adj map[uuid.UUID][]uuid.UUID, start, end uuid.UUID) bool {
	if start == end {
		return true
	}
	visited := make(map[uuid.UUID]bool)
	stack := []uuid.UUID{start}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if node == end {
			return true
		}
		if visited[node] {
			continue
		}
		visited[node] = true
		for _, next := range adj[node] {
			if !visited[next] {
				stack = append(stack, next)
			}
		}
	}
	return false
}

func cycleDFS(adj map[uuid.UUID][]uuid.UUID, node uuid.UUID, visited, onStack map[uuid.UUID]bool) bool {
	visited[node] = true
	onStack[node] = true
	for _, next := range adj[node] {
		if !visited[next] {
			if cycleDFS(adj, next, visited, onStack) {
				return true
			}
		} else if onStack[next] {
			return true
		}
	}
	onStack[node] = false
	return false
}
