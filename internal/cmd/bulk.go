package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	szurubooru "github.com/rzk3/szurubooru-client"
)

// DefaultConcurrency is the default number of concurrent uploads
const DefaultConcurrency = 5

// BulkResult represents the outcome of a single bulk operation
type BulkResult struct {
	File    string `json:"file"`
	Success bool   `json:"success"`
	Skipped bool   `json:"skipped,omitempty"`
	Error   string `json:"error,omitempty"`
	PostID  int    `json:"postId,omitempty"`
}

func newBulkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Bulk operations",
	}
	cmd.AddCommand(newBulkUploadCmd())
	return cmd
}

func newBulkUploadCmd() *cobra.Command {
	var (
		safety      string
		tags        []string
		concurrency int64
		skipDupes   bool
	)

	cmd := &cobra.Command{
		Use:   "upload <file>...",
		Short: "Upload many files concurrently",
		Example: `  szuru bulk upload *.png --safety safe --tags scan
  szuru bulk upload dir/*.jpg --safety safe --concurrency 10 --skip-duplicates`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			results := runBulkUpload(cmd.Context(), client, args, bulkUploadOptions{
				Safety:      szurubooru.PostSafety(safety),
				Tags:        tags,
				Concurrency: concurrency,
				SkipDupes:   skipDupes,
				Progress:    cmd.ErrOrStderr(),
			})

			success, failure := countResults(results)
			if err := printJSON(cmd, results); err != nil {
				return err
			}
			if failure > 0 {
				return fmt.Errorf("%d of %d uploads failed", failure, success+failure)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&safety, "safety", "", "Post safety: safe|sketchy|unsafe (required)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Tag names to apply to every post")
	cmd.Flags().Int64Var(&concurrency, "concurrency", DefaultConcurrency, "Number of concurrent uploads")
	cmd.Flags().BoolVar(&skipDupes, "skip-duplicates", false, "Skip files the server already has (by checksum)")

	return cmd
}

type bulkUploadOptions struct {
	Safety      szurubooru.PostSafety
	Tags        []string
	Concurrency int64
	SkipDupes   bool
	Progress    io.Writer
}

// runBulkUpload uploads files concurrently with bounded parallelism.
// Individual failures are collected, not fatal.
func runBulkUpload(ctx context.Context, client *szurubooru.Client, files []string, opts bulkUploadOptions) []BulkResult {
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}

	sem := semaphore.NewWeighted(opts.Concurrency)
	var mu sync.Mutex
	results := make([]BulkResult, 0, len(files))
	total := len(files)
	var done int64

	g, ctx := errgroup.WithContext(ctx)

	for _, file := range files {
		file := file
		g.Go(func() error {
			if err := sem.Acquire(ctx, 1); err != nil {
				return nil // context cancelled, don't add to results
			}
			defer sem.Release(1)

			if ctx.Err() != nil {
				return nil
			}

			result := uploadOne(ctx, client, file, opts)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			if opts.Progress != nil && total > 0 {
				current := atomic.AddInt64(&done, 1)
				mu.Lock()
				_, _ = fmt.Fprintf(opts.Progress, "\rUploaded %d/%d", current, total)
				mu.Unlock()
			}

			return nil // don't fail the group on individual errors
		})
	}

	_ = g.Wait()

	if opts.Progress != nil && total > 0 {
		_, _ = fmt.Fprintf(opts.Progress, "\rUploaded %d/%d\n", atomic.LoadInt64(&done), total)
	}

	return results
}

func uploadOne(ctx context.Context, client *szurubooru.Client, file string, opts bulkUploadOptions) BulkResult {
	req := client.Request()

	if opts.SkipDupes {
		existing, err := req.PostForFilePath(ctx, file)
		if err == nil && existing != nil {
			return BulkResult{
				File:    filepath.Base(file),
				Success: true,
				Skipped: true,
				PostID:  existing.ID,
			}
		}
	}

	post, err := req.CreatePostFromFilePath(ctx, file, "", &szurubooru.CreateUpdatePost{
		Safety: opts.Safety,
		Tags:   opts.Tags,
	})
	if err != nil {
		return BulkResult{File: filepath.Base(file), Error: err.Error()}
	}
	return BulkResult{File: filepath.Base(file), Success: true, PostID: post.ID}
}

// countResults returns success and failure counts from bulk results
func countResults(results []BulkResult) (success, failure int) {
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failure++
		}
	}
	return
}
