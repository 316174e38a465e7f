package ports

import (
	"context"
)

// GitInfo holds the working-copy context attached to focus segments.
type GitInfo struct {
	Branch string
}

// GitDetector defines the interface for git context detection.
// This is a driven port (implemented by adapters).
type GitDetector interface {
	// Detect reads HEAD of the repository containing workingDir. It is
	// called on the UI loop, so implementations must not walk the worktree.
	Detect(ctx context.Context, workingDir string) (*GitInfo, error)
}
