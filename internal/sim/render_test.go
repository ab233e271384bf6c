package sim

import (
	"bytes"
	"strings"
	"testing"

	"ringsim/internal/ring"
)

func TestRenderServers(t *testing.T) {
	var buf bytes.Buffer
	servers := []ring.ServerInfo{
		{ID: 1, Weight: 2, Blobs: []ring.Blob{{ID: "abc", Angle: 251}, {ID: "x", Angle: 135}}},
		{ID: 2, Weight: 2, Blobs: []ring.Blob{}},
	}

	if err := RenderServers(&buf, servers); err != nil {
		t.Fatalf("RenderServers() failed: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "ID") {
		t.Errorf("Unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "abc@251 x@135") {
		t.Errorf("Expected blob list in row, got %q", lines[1])
	}
	// Server 1 previews at 222 degrees.
	if fields := strings.Fields(lines[1]); fields[2] != "222" {
		t.Errorf("Expected preview angle 222, got %q", fields[2])
	}
}

func TestRenderVirtualNodes(t *testing.T) {
	var buf bytes.Buffer
	vnodes := []ring.VirtualNode{{Angle: 0, ServerID: 1}, {Angle: 180, ServerID: 2}}

	if err := RenderVirtualNodes(&buf, vnodes); err != nil {
		t.Fatalf("RenderVirtualNodes() failed: %v", err)
	}

	want := "ANGLE  SERVER\n0      1\n180    2\n"
	if buf.String() != want {
		t.Errorf("RenderVirtualNodes() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestRenderStats_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderStats(&buf, ring.Stats{Weight: 1}); err != nil {
		t.Fatalf("RenderStats() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "0 servers, weight 1, 0 virtual nodes, 0 blobs, 0 unassigned") {
		t.Errorf("Unexpected summary: %q", buf.String())
	}
}
