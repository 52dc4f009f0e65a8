// Package export writes hierarchy snapshots as JSONL to local files or
// S3-compatible buckets.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/groblegark/treeline/internal/model"
)

// Destination is the interface for a snapshot target (file, S3, etc.).
type Destination interface {
	// Write sends the JSONL payload to the destination.
	Write(ctx context.Context, data []byte) error
}

// header is the first JSONL record written by WriteJSONL.
type header struct {
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	PassID      string    `json:"pass_id"`
	TreeCount   int       `json:"tree_count"`
	NodeCount   int       `json:"node_count"`
	FolderCount int       `json:"folder_count,omitempty"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// WriteJSONL writes a forest snapshot as JSONL to w: one header line followed
// by one line per tree, in display order.
func WriteJSONL(forest *model.Forest, w io.Writer) error {
	nodeCount := 0
	for _, tree := range forest.Trees {
		nodeCount += len(tree.Nodes)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		Timestamp:   time.Now().UTC(),
		PassID:      forest.PassID,
		TreeCount:   len(forest.Trees),
		NodeCount:   nodeCount,
		FolderCount: forest.FolderCount,
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, tree := range forest.Trees {
		if err := enc.Encode(record{Type: "tree", Data: tree}); err != nil {
			return fmt.Errorf("encode tree %s: %w", tree.Root.Key, err)
		}
	}

	return nil
}
