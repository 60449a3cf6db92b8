// internal/discovery/report.go
package discovery

import (
	"fmt"
	"io"
	"math/bits"
	"strings"
)

// Render returns a human-readable report of c.
// Pure: same model, same lines. Unsupported families are omitted.
func Render(c *Capabilities) []string {
	if c == nil {
		return nil
	}

	var lines []string
	block := func(code FeatureCode, fields ...string) {
		lines = append(lines, fmt.Sprintf("%s function (%s)", code, code.Hex()))
		for _, f := range fields {
			lines = append(lines, "    "+f)
		}
	}

	if t := c.TPer; t.Supported {
		block(FeatureTPer, join(
			yn("ACKNAK", t.ACKNAK),
			yn("ASYNC", t.Async),
			yn("BufferManagement", t.BufferMgmt),
			yn("comIDManagement", t.ComIDMgmt),
			yn("Streaming", t.Streaming),
			yn("SYNC", t.Sync),
		))
	}

	if l := c.Locking; l.Supported {
		block(FeatureLocking, join(
			yn("Locked", l.Locked),
			yn("LockingEnabled", l.LockingEnabled),
			yn("LockingSupported", l.LockingSupported),
			yn("MBRDone", l.MBRDone),
			yn("MBREnabled", l.MBREnabled),
			yn("MediaEncrypt", l.MediaEncryption),
		))
	}

	if g := c.Geometry; g.Supported {
		gran := fmt.Sprintf("Alignment Granularity = %d", g.AlignmentGranularity)
		// granularity is in logical blocks; show bytes when it fits
		if hi, lo := bits.Mul64(g.AlignmentGranularity, uint64(g.LogicalBlockSize)); hi == 0 {
			gran += fmt.Sprintf(" (%d)", lo)
		}
		block(FeatureGeometry, join(
			yn("Align", g.Align),
			gran,
			fmt.Sprintf("Logical Block size = %d", g.LogicalBlockSize),
			fmt.Sprintf("Lowest Aligned LBA = %d", g.LowestAlignedLBA),
		))
	}

	if e := c.Enterprise; e.Supported {
		block(FeatureEnterprise, join(
			yn("Range crossing", e.RangeCrossing),
			fmt.Sprintf("Base comID = 0x%04x", e.BaseComID),
			fmt.Sprintf("comIDs = %d", e.NumComIDs),
		))
	}

	if s := c.SingleUser; s.Supported {
		block(FeatureSingleUser, join(
			yn("ALL", s.All),
			yn("ANY", s.Any),
			yn("Policy", s.Policy),
			fmt.Sprintf("Locking Objects = %d", s.LockingObjects),
		))
	}

	if ds := c.DataStore; ds.Supported {
		block(FeatureDataStore, join(
			fmt.Sprintf("Max Tables = %d", ds.MaxTables),
			fmt.Sprintf("Max Size Tables = %d", ds.MaxTableSize),
			fmt.Sprintf("Table size alignment = %d", ds.Alignment),
		))
	}

	if o := c.Opal2; o.Supported {
		block(FeatureOpal2,
			join(
				fmt.Sprintf("Base comID = 0x%04x", o.BaseComID),
				fmt.Sprintf("Initial PIN = 0x%02x", o.InitialPIN),
				fmt.Sprintf("Reverted PIN = 0x%02x", o.RevertedPIN),
				fmt.Sprintf("comIDs = %d", o.NumComIDs),
			),
			join(
				fmt.Sprintf("Locking Admins = %d", o.NumAdmins),
				fmt.Sprintf("Locking Users = %d", o.NumUsers),
				yn("Range Crossing", o.RangeCrossing),
			),
		)
	}

	if c.Unknown > 0 {
		lines = append(lines, fmt.Sprintf("%d unknown feature codes ignored", c.Unknown))
	}

	return lines
}

// WriteReport writes Render(c) to w, one line each.
func WriteReport(w io.Writer, c *Capabilities) error {
	for _, line := range Render(c) {
		if _, err := io.WriteString(w, line+"\n"); err != nil {
			return err
		}
	}
	return nil
}

func yn(label string, v bool) string {
	if v {
		return label + " = Y"
	}
	return label + " = N"
}

func join(fields ...string) string {
	return strings.Join(fields, ", ")
}
