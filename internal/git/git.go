package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// LeakStatus contains git exposure information for a set of files
type LeakStatus struct {
	IsRepo    bool
	Tracked   []string // Files tracked by git (bad)
	Unignored []string // Files neither tracked nor ignored (warning)
}

// Clean reports whether nothing needs the user's attention
func (s *LeakStatus) Clean() bool {
	return len(s.Tracked) == 0 && len(s.Unignored) == 0
}

// IsGitRepo checks if the working directory is inside a git repository
func IsGitRepo(workDir string) bool {
	cmd := exec.Command("git", "rev-parse", "--is-inside-work-tree")
	cmd.Dir = workDir
	return cmd.Run() == nil
}

// IsTracked checks if a file is tracked by git
func IsTracked(workDir, path string) bool {
	cmd := exec.Command("git", "ls-files", "--", path)
	cmd.Dir = workDir
	output, err := cmd.Output()
	if err != nil {
		return false
	}

	return len(strings.TrimSpace(string(output))) > 0
}

// IsIgnored checks if a file is ignored by git (handles all .gitignore files)
func IsIgnored(workDir, path string) bool {
	cmd := exec.Command("git", "check-ignore", "-q", "--", path)
	cmd.Dir = workDir

	// git check-ignore returns exit code 0 if file is ignored
	return cmd.Run() == nil
}

// CheckLeaks inspects each path from the work tree of its own directory.
// Paths that do not exist yet are skipped.
func CheckLeaks(paths ...string) *LeakStatus {
	status := &LeakStatus{}

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		dir := filepath.Dir(path)
		if !IsGitRepo(dir) {
			continue
		}
		status.IsRepo = true

		name := filepath.Base(path)
		switch {
		case IsTracked(dir, name):
			status.Tracked = append(status.Tracked, path)
		case !IsIgnored(dir, name):
			status.Unignored = append(status.Unignored, path)
		}
	}

	return status
}

// FormatLeakStatus formats leak warnings for display
func FormatLeakStatus(status *LeakStatus) string {
	if !status.IsRepo || status.Clean() {
		return ""
	}

	var result strings.Builder
	result.WriteString("\nGit exposure:\n")
	for _, file := range status.Tracked {
		result.WriteString(fmt.Sprintf("   error: %s is tracked by git (run: git rm --cached %s)\n", file, filepath.Base(file)))
	}
	for _, file := range status.Unignored {
		result.WriteString(fmt.Sprintf("   warning: %s not in .gitignore (add to .gitignore)\n", file))
	}

	return result.String()
}
