// Package backup copies the upload directory to a dated snapshot once a day
// and prunes snapshots older than the retention window.
package backup

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/junaidrashid-git/jewelry-api/logger"
)

const stampLayout = "2006-01-02_15-04-05"

type Runner struct {
	Src       string
	Dest      string
	Retention time.Duration
	Hour      int

	now func() time.Time
}

func NewRunner(src, dest string, retention time.Duration, hour int) *Runner {
	return &Runner{Src: src, Dest: dest, Retention: retention, Hour: hour, now: time.Now}
}

// NextRun returns the next occurrence of the configured hour after from.
func (r *Runner) NextRun(from time.Time) time.Time {
	next := time.Date(from.Year(), from.Month(), from.Day(), r.Hour, 0, 0, 0, from.Location())
	if !next.After(from) {
		next = next.Add(24 * time.Hour)
	}
	return next
}

// Run snapshots daily until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	for {
		next := r.NextRun(r.now())
		logger.Info().Time("next", next).Msg("next upload backup scheduled")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		dest, err := r.Snapshot()
		if err != nil {
			logger.Error().Err(err).Msg("upload backup failed")
		} else {
			logger.Info().Str("dest", dest).Msg("uploads backed up")
		}
		r.Prune()
	}
}

// Snapshot copies Src into a new timestamped directory under Dest.
func (r *Runner) Snapshot() (string, error) {
	dest := filepath.Join(r.Dest, r.now().Format(stampLayout))
	if err := copyDir(r.Src, dest); err != nil {
		return "", fmt.Errorf("backup %s: %w", r.Src, err)
	}
	return dest, nil
}

// Prune removes snapshot directories older than Retention and returns how
// many were removed.
func (r *Runner) Prune() int {
	entries, err := os.ReadDir(r.Dest)
	if err != nil {
		logger.Error().Err(err).Str("dir", r.Dest).Msg("failed to read backup directory")
		return 0
	}

	cutoff := r.now().Add(-r.Retention)
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(r.Dest, entry.Name())
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			logger.Error().Err(err).Str("dir", path).Msg("failed to remove old backup")
			continue
		}
		logger.Info().Str("dir", path).Msg("removed old backup")
		removed++
	}
	return removed
}

func copyDir(src, dest string) error {
	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		destPath := filepath.Join(dest, entry.Name())
		if entry.IsDir() {
			err = copyDir(srcPath, destPath)
		} else {
			err = copyFile(srcPath, destPath)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
