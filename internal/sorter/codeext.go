package sorter

// codeExtensions is the fixed set of code-like extensions (lower-cased,
// without the leading dot) skipped unless --include-code is given. The set is
// not user-extensible.
var codeExtensions = map[string]struct{}{
	// Python and notebooks
	"py": {}, "ipynb": {}, "pyc": {}, "pyo": {},
	// Web development
	"html": {}, "css": {}, "js": {}, "jsx": {}, "ts": {}, "tsx": {},
	// Java, C-family
	"java": {}, "c": {}, "cpp": {}, "h": {}, "hpp": {}, "cs": {},
	// Scripting
	"sh": {}, "bash": {}, "ps1": {}, "bat": {},
	// Data and config for code projects
	"json": {}, "yaml": {}, "yml": {}, "xml": {},
	// Other major languages
	"go": {}, "rs": {}, "rb": {}, "php": {}, "swift": {}, "kt": {}, "kts": {},
}

// IsCodeExtension reports whether key (a lower-cased extension without dot)
// belongs to the fixed code-like set.
func IsCodeExtension(key string) bool {
	_, ok := codeExtensions[key]
	return ok
}
