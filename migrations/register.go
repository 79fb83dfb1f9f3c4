package migrations

import (
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

var (
	mu          sync.RWMutex
	filesystems []fs.FS
)

// Register records a filesystem that contains go-contacts migrations. Callers
// can then feed all registered filesystems into go-persistence-bun (or any
// other runner) via Filesystems().
func Register(fsys fs.FS) {
	if fsys == nil {
		return
	}
	mu.Lock()
	filesystems = append(filesystems, fsys)
	mu.Unlock()
}

// Filesystems returns a copy of all registered migration filesystems.
func Filesystems() []fs.FS {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]fs.FS, len(filesystems))
	copy(out, filesystems)
	return out
}

// UpFiles lists the ".up.sql" files for dialect in apply order. Root files are
// the PostgreSQL set; a dialect subdirectory overrides files with the same name.
func UpFiles(fsys fs.FS, dialect string) ([]string, error) {
	root, err := fs.Glob(fsys, "*.up.sql")
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(root))
	for _, name := range root {
		byName[name] = name
	}
	if normalized, err := normalizeDialect(dialect); err == nil && normalized != "postgres" {
		overrides, err := fs.Glob(fsys, path.Join(normalized, "*.up.sql"))
		if err != nil {
			return nil, err
		}
		for _, name := range overrides {
			byName[path.Base(name)] = name
		}
	}
	names := make([]string, 0, len(byName))
	for base := range byName {
		names = append(names, base)
	}
	sort.Strings(names)
	out := make([]string, 0, len(names))
	for _, base := range names {
		out = append(out, byName[base])
	}
	return out, nil
}

// SplitStatements breaks a migration file into executable statements,
// dropping blank lines and line comments.
func SplitStatements(sql string) []string {
	var (
		builder    strings.Builder
		statements []string
	)
	for _, line := range strings.Split(sql, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "--") {
			continue
		}
		builder.WriteString(line)
		if strings.HasSuffix(line, ";") {
			statements = append(statements, strings.TrimSuffix(builder.String(), ";"))
			builder.Reset()
			continue
		}
		builder.WriteString(" ")
	}
	if rest := strings.TrimSpace(builder.String()); rest != "" {
		statements = append(statements, rest)
	}
	return statements
}
