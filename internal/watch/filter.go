package watch

import "strings"

var (
	gitTriggers = []string{".git/index", ".git/HEAD"}

	ignoredDirs = []string{
		"node_modules",
		"target",
		".build",
		"build",
		"dist",
		".next",
		"__pycache__",
		".pytest_cache",
		"venv",
		".venv",
	}

	ignoredSuffixes = []string{
		".lock",
		".pyc", ".pyo", ".class",
		".o", ".a", ".so", ".dylib",
		"~", ".swp", ".swo",
	}
)

// ShouldTrigger returns true if a change to the slash-separated path, relative to the repository root, could change a diff.
// Git's index, HEAD, and refs trigger. Other git internals, build output, dependencies, and editor files do not.
func ShouldTrigger(rel string) bool {
	switch {
	case rel == "" || rel == "." || strings.HasPrefix(rel, "../"):
		return false
	case isGitTrigger(rel):
		return true
	case rel == ".git" || strings.HasPrefix(rel, ".git/"):
		return false
	case strings.Contains(rel, ".DS_Store"):
		return false
	}
	for _, suffix := range ignoredSuffixes {
		if strings.HasSuffix(rel, suffix) {
			return false
		}
	}
	firstDir, _, _ := strings.Cut(rel, "/")
	return !isIgnoredDir(firstDir)
}

func isGitTrigger(rel string) bool {
	for _, trigger := range gitTriggers {
		if rel == trigger {
			return true
		}
	}
	return strings.HasPrefix(rel, ".git/refs/") && !strings.HasSuffix(rel, ".lock")
}

func isIgnoredDir(name string) bool {
	for _, dir := range ignoredDirs {
		if name == dir {
			return true
		}
	}
	return false
}

// shouldWatchDir returns true if the slash-separated directory, relative to the repository root, may contain triggering files
func shouldWatchDir(rel string) bool {
	switch {
	case rel == "." || rel == ".git":
		return true
	case rel == ".git/refs" || strings.HasPrefix(rel, ".git/refs/"):
		return true
	case strings.HasPrefix(rel, ".git/"):
		return false
	}
	firstDir, _, _ := strings.Cut(rel, "/")
	return !isIgnoredDir(firstDir)
}
