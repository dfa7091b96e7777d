package domain_test

import (
	"testing"

	"github.com/google/uuid"

	"kanban/internal/core"
	"kanban/internal/domain"
)

func TestCardGraph_AddEdge(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	t.Run("rejects self reference", func(t *testing.T) {
		t.Parallel()
		var g domain.CardGraph

		err := g.AddEdge(a, a, domain.EdgeBlocks, testNow)

		if !core.IsKind(err, core.KindValidation) {
			t.Fatalf("got %v, want validation error", err)
		}
	})

	t.Run("duplicate tuple is a no-op", func(t *testing.T) {
		t.Parallel()
		var g domain.CardGraph

		if err := g.AddEdge(a, b, domain.EdgeBlocks, testNow); err != nil {
			t.Fatalf("first add: %v", err)
		}
		if err := g.AddEdge(a, b, domain.EdgeBlocks, testNow); err != nil {
			t.Fatalf("duplicate add: %v", err)
		}
		if g.EdgeCount() != 1 {
			t.Fatalf("edge count = %d, want 1", g.EdgeCount())
		}
	})

	t.Run("rejects a blocks cycle", func(t *testing.T) {
		t.Parallel()
		var g domain.CardGraph
		g.AddEdge(a, b, domain.EdgeBlocks, testNow)
		g.AddEdge(b, c, domain.EdgeBlocks, testNow)

		err := g.AddEdge(c, a, domain.EdgeBlocks, testNow)

		if !core.IsKind(err, core.KindValidation) {
			t.Fatalf("got %v, want validation error", err)
		}
		if g.HasCycle(domain.EdgeBlocks) {
			t.Error("graph should remain acyclic after rejection")
		}
	})

	t.Run("relates-to cycles are allowed", func(t *testing.T) {
		t.Parallel()
		var g domain.CardGraph
		g.AddEdge(a, b, domain.EdgeRelatesTo, testNow)

		if err := g.AddEdge(b, a, domain.EdgeRelatesTo, testNow); err != nil {
			t.Fatalf("relates-to back edge: %v", err)
		}
	})

	t.Run("blocks cycle check ignores relates-to edges", func(t *testing.T) {
		t.Parallel()
		var g domain.CardGraph
		g.AddEdge(a, b, domain.EdgeRelatesTo, testNow)

		if err := g.AddEdge(b, a, domain.EdgeBlocks, testNow); err != nil {
			t.Fatalf("blocks edge over relates-to path: %v", err)
		}
	})
}

func TestCardGraph_Traversal(t *testing.T) {
	t.Run("blockers and blocked-by follow edge direction", func(t *testing.T) {
		t.Parallel()
		a, b, c := uuid.New(), uuid.New(), uuid.New()
		var g domain.CardGraph
		g.AddEdge(a, b, domain.EdgeBlocks, testNow)
		g.AddEdge(c, b, domain.EdgeBlocks, testNow)

		if got := g.Blockers(b); len(got) != 2 {
			t.Fatalf("blockers of b = %d, want 2", len(got))
		}
		if got := g.BlockedBy(a); len(got) != 1 || got[0] != b {
			t.Fatalf("blocked by a = %v, want [%s]", got, b)
		}
	})

	t.Run("archived edges are excluded from traversal but kept", func(t *testing.T) {
		t.Parallel()
		a, b := uuid.New(), uuid.New()
		var g domain.CardGraph
		g.AddEdge(a, b, domain.EdgeBlocks, testNow)

		if !g.ArchiveEdge(a, b, testNow) {
			t.Fatal("archive should find the edge")
		}
		if got := g.Blockers(b); len(got) != 0 {
			t.Fatalf("blockers after archive = %v, want none", got)
		}
		if g.EdgeCount() != 1 || g.ActiveEdgeCount() != 0 {
			t.Fatalf("counts = (%d, %d), want (1, 0)", g.EdgeCount(), g.ActiveEdgeCount())
		}

		if !g.UnarchiveEdge(a, b) {
			t.Fatal("unarchive should find the edge")
		}
		if got := g.Blockers(b); len(got) != 1 {
			t.Fatalf("blockers after unarchive = %v, want one", got)
		}
	})

	t.Run("reachable-from includes the start and follows both directions of bidirectional edges", func(t *testing.T) {
		t.Parallel()
		a, b, c, d := uuid.New(), uuid.New(), uuid.New(), uuid.New()
		var g domain.CardGraph
		g.AddEdge(a, b, domain.EdgeBlocks, testNow)
		g.AddEdge(b, c, domain.EdgeRelatesTo, testNow)
		g.AddEdge(d, a, domain.EdgeBlocks, testNow)

		reached := g.ReachableFrom(a)

		for _, id := range []uuid.UUID{a, b, c} {
			if !reached[id] {
				t.Errorf("%s should be reachable from a", id)
			}
		}
		// d points at a; the directed edge does not run backwards.
		if reached[d] {
			t.Error("d should not be reachable from a")
		}
	})

	t.Run("remove node strips every touching edge", func(t *testing.T) {
		t.Parallel()
		a, b, c := uuid.New(), uuid.New(), uuid.New()
		var g domain.CardGraph
		g.AddEdge(a, b, domain.EdgeBlocks, testNow)
		g.AddEdge(b, c, domain.EdgeRelatesTo, testNow)

		g.RemoveNode(b)

		if g.EdgeCount() != 0 {
			t.Fatalf("edge count = %d, want 0", g.EdgeCount())
		}
	})
}
