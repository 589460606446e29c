package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/drakos74/lifexp/internal/model"
)

// DefaultPattern matches the result files in the results directory.
const DefaultPattern = "*.csv"

// NextResultFile derives the next result file name from the most recent one in the directory,
// by incrementing the single digit right before the extension e.g. result_1.csv -> result_2.csv.
// There is no rollover, a trailing 9 cannot be incremented.
func NextResultFile(dir, pattern string) (string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	latest, err := Latest(dir, pattern)
	if err != nil {
		return "", err
	}

	base := filepath.Base(latest)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		return "", fmt.Errorf("no index in file name '%s': %w", base, model.OutputNamingErr)
	}

	digit, err := strconv.Atoi(stem[len(stem)-1:])
	if err != nil {
		return "", fmt.Errorf("no single digit index in file name '%s': %w", base, model.OutputNamingErr)
	}
	if digit == 9 {
		return "", fmt.Errorf("index of '%s' cannot be incremented past 9: %w", base, model.OutputNamingErr)
	}

	next := fmt.Sprintf("%s%d%s", stem[:len(stem)-1], digit+1, ext)
	return filepath.Join(filepath.Dir(latest), next), nil
}

// Latest returns the most recently modified file matching the pattern in the directory.
// Files with the same modification time are ordered by name.
func Latest(dir, pattern string) (string, error) {
	files, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("invalid pattern '%s': %w", pattern, model.OutputNamingErr)
	}

	var latest string
	var latestInfo os.FileInfo
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			return "", fmt.Errorf("could not stat '%s': %w", f, err)
		}
		if info.IsDir() {
			continue
		}
		if latestInfo == nil ||
			info.ModTime().After(latestInfo.ModTime()) ||
			(info.ModTime().Equal(latestInfo.ModTime()) && f > latest) {
			latest = f
			latestInfo = info
		}
	}

	if latestInfo == nil {
		return "", fmt.Errorf("no files matching '%s' in '%s': %w", pattern, dir, model.OutputNamingErr)
	}
	return latest, nil
}
