// File: internal/sample/jsonl.go
package sample

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	json "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/dverbeek84/limelight-cli/internal/profile"
)

// Write streams the sample to w as JSON Lines in insertion order.
func (s *Sample) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, rec := range s.Records() {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("failed to marshal record %s: %w", rec.Slug, err)
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile persists the sample to path, creating parent directories as
// needed. The file is replaced atomically-enough for our purposes: a fresh
// run overwrites, it never appends.
func (s *Sample) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := s.Write(f); err != nil {
		return err
	}
	return f.Close()
}

// Read loads a sample from a JSONL stream. Malformed lines are logged and
// skipped so one bad row cannot sink a whole comparison; duplicate slugs
// keep their first occurrence.
func Read(r io.Reader, name string, logger *zap.Logger) (*Sample, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := New(name, "loaded")

	scanner := bufio.NewScanner(r)
	// Profile rows with full fact tables can get long.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec profile.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			logger.Warn("Skipping malformed sample line",
				zap.Int("line", lineno),
				zap.Error(err),
			)
			continue
		}
		s.Add(rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed reading sample: %w", err)
	}
	return s, nil
}

// ReadFile loads a sample from a JSONL file. The sample name defaults to the
// file's base name without extension.
func ReadFile(path string, logger *zap.Logger) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sample %s: %w", path, err)
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Read(f, name, logger)
}
