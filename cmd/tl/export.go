package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/groblegark/treeline/internal/events"
	"github.com/groblegark/treeline/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export <query>",
	Short: "Export the hierarchy of matching issues as a JSONL snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		out, _ := cmd.Flags().GetString("out")
		toS3, _ := cmd.Flags().GetBool("s3")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		if maxResults == 0 {
			maxResults = cfg.MaxResults
		}

		ctx := context.Background()
		forest, err := builder.BuildForest(ctx, query, maxResults)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		var buf bytes.Buffer
		if err := export.WriteJSONL(forest, &buf); err != nil {
			return err
		}

		dest, name, err := snapshotDestination(ctx, out, toS3)
		if err != nil {
			return err
		}
		if err := dest.Write(ctx, buf.Bytes()); err != nil {
			return err
		}

		_ = pub.Publish(ctx, events.TopicExportCompleted, events.ExportCompleted{
			PassID:      forest.PassID,
			Destination: name,
			Records:     len(forest.Trees),
		})

		fmt.Printf("exported %d trees to %s (%d bytes)\n", len(forest.Trees), name, buf.Len())
		return nil
	},
}

func snapshotDestination(ctx context.Context, out string, toS3 bool) (export.Destination, string, error) {
	if toS3 {
		if cfg.SnapshotS3Bucket == "" {
			return nil, "", fmt.Errorf("--s3 requires TREELINE_SNAPSHOT_S3_BUCKET")
		}
		dest, err := export.NewS3Destination(ctx, cfg.SnapshotS3Bucket, cfg.SnapshotS3Key, cfg.SnapshotS3Region, cfg.SnapshotS3Endpoint)
		if err != nil {
			return nil, "", err
		}
		return dest, fmt.Sprintf("s3://%s/%s", cfg.SnapshotS3Bucket, cfg.SnapshotS3Key), nil
	}
	return export.NewFileDestination(out), out, nil
}

func init() {
	exportCmd.Flags().String("out", "snapshot.jsonl", "output file path")
	exportCmd.Flags().Bool("s3", false, "upload to the configured S3 bucket instead of a file")
	exportCmd.Flags().Int("max-results", 0, "maximum query matches to export (default from TREELINE_MAX_RESULTS)")
}
