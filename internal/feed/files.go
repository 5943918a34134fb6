package feed

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
)

// MatchBase is the filename fragment shared between a match-info file and its
// commentary files. It is the join key between the two document sets: the
// join is a string convention over filenames, so it gets an explicit type
// instead of ad hoc string handling in the importer.
type MatchBase string

var commentaryFilePattern = regexp.MustCompile(`(?i)^innings_\d+_(.+)_match_innings_\d+_commentary\.json$`)

const infoSuffix = "_info.json"

// InfoBase derives the join key from a match-info filename by stripping the
// _info.json suffix. Returns false when the filename does not carry it.
func InfoBase(filename string) (MatchBase, bool) {
	if len(filename) <= len(infoSuffix) {
		return "", false
	}
	tail := filename[len(filename)-len(infoSuffix):]
	if !strings.EqualFold(tail, infoSuffix) {
		return "", false
	}
	return MatchBase(filename[:len(filename)-len(infoSuffix)]), true
}

// CommentaryBase extracts the join key from a commentary filename of the form
// innings_<N>_<BASE>_match_innings_<N>_commentary.json.
func CommentaryBase(filename string) (MatchBase, bool) {
	m := commentaryFilePattern.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}
	return MatchBase(m[1]), true
}

// WalkJSONFiles recursively discovers every .json file under root, depth
// unbounded, returning full paths in lexical walk order.
func WalkJSONFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
