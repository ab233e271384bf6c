package sim

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ringsim/internal/hash"
	"ringsim/internal/ring"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// RenderServers writes one row per server with its blobs.
func RenderServers(out io.Writer, servers []ring.ServerInfo) error {
	if len(servers) == 0 {
		_, err := fmt.Fprintln(out, "no servers")
		return err
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tWEIGHT\tPREVIEW\tBLOBS\tCONTENTS")
	for _, s := range servers {
		contents := make([]string, 0, len(s.Blobs))
		for _, b := range s.Blobs {
			contents = append(contents, fmt.Sprintf("%s@%d", b.ID, b.Angle))
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%s\n",
			s.ID, s.Weight, hash.ServerAngle(s.ID), len(s.Blobs), strings.Join(contents, " "))
	}
	return tw.Flush()
}

// RenderVirtualNodes writes one row per ring slot in angle order.
func RenderVirtualNodes(out io.Writer, vnodes []ring.VirtualNode) error {
	if len(vnodes) == 0 {
		_, err := fmt.Fprintln(out, "no virtual nodes")
		return err
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "ANGLE\tSERVER")
	for _, v := range vnodes {
		fmt.Fprintf(tw, "%d\t%d\n", v.Angle, v.ServerID)
	}
	return tw.Flush()
}

// RenderStats writes per-server load followed by ring totals.
func RenderStats(out io.Writer, st ring.Stats) error {
	tw := newTable(out)
	fmt.Fprintln(tw, "ID\tVNODES\tSPAN\tBLOBS\tSHARE")
	for _, s := range st.Servers {
		share := 0.0
		if st.Blobs > 0 {
			share = 100 * float64(s.Blobs) / float64(st.Blobs)
		}
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.1f%%\n", s.ID, s.VirtualNodes, s.Span, s.Blobs, share)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%d servers, weight %d, %d virtual nodes, %d blobs, %d unassigned\n",
		len(st.Servers), st.Weight, st.VirtualNodes, st.Blobs, st.Unassigned)
	return err
}

// RenderUnassigned lists blobs retained while the ring had no servers.
func RenderUnassigned(out io.Writer, blobs []ring.Blob) error {
	if len(blobs) == 0 {
		_, err := fmt.Fprintln(out, "no unassigned blobs")
		return err
	}
	tw := newTable(out)
	fmt.Fprintln(tw, "CONTENT\tANGLE")
	for _, b := range blobs {
		fmt.Fprintf(tw, "%s\t%d\n", b.ID, b.Angle)
	}
	return tw.Flush()
}
