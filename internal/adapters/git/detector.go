// Package git reads the working-copy branch so finished focus segments
// can be tagged with what was being worked on.
package git

import (
	"context"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
	"github.com/xvierd/doro/internal/ports"
)

// Detector implements the ports.GitDetector interface using go-git.
type Detector struct {
	dir string
}

// NewDetector creates a detector rooted at dir. An empty dir means the
// process working directory at detection time.
func NewDetector(dir string) *Detector {
	return &Detector{dir: dir}
}

// Ensure Detector implements ports.GitDetector.
var _ ports.GitDetector = (*Detector)(nil)

// Detect opens the repository containing workingDir, searching parent
// directories, and reports the branch HEAD points at. Only HEAD is read.
func (d *Detector) Detect(ctx context.Context, workingDir string) (*ports.GitInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir, err := d.resolve(workingDir)
	if err != nil {
		return nil, err
	}

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD: %w", err)
	}

	branch := head.Name().Short()
	if !head.Name().IsBranch() {
		branch = "HEAD detached"
	}

	return &ports.GitInfo{Branch: branch}, nil
}

func (d *Detector) resolve(workingDir string) (string, error) {
	if workingDir != "" {
		return workingDir, nil
	}
	if d.dir != "" {
		return d.dir, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return cwd, nil
}
