package batch

import (
	"os"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// resolveSource finds name inside dir. Names typed on one platform often
// arrive in another Unicode normalization form on disk, so the NFC and NFD
// spellings are tried after the literal one.
func resolveSource(dir, name string) (string, bool) {
	candidates := []string{name, norm.NFC.String(name), norm.NFD.String(name)}
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		if _, ok := seen[candidate]; ok {
			continue
		}
		seen[candidate] = struct{}{}
		path := filepath.Join(dir, candidate)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return filepath.Join(dir, name), false
}
