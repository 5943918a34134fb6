package feed

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Index is the in-memory lookup from MatchBase to parsed match metadata. It
// is built once per run and read-only afterward; its size is bounded by the
// number of match-info files.
type Index struct {
	entries map[MatchBase]*MatchInfo
	skipped int
}

// BuildIndex scans the match-info directory, parses every JSON document, and
// indexes each under its filename-derived join key. Documents that fail to
// parse or carry no numeric match_id are counted and omitted; a directory
// read failure is returned (the caller treats it as fatal).
func BuildIndex(matchInfoDir string) (*Index, error) {
	files, err := WalkJSONFiles(matchInfoDir)
	if err != nil {
		return nil, fmt.Errorf("failed to scan match-info directory: %w", err)
	}

	ix := &Index{entries: make(map[MatchBase]*MatchInfo, len(files))}
	for _, path := range files {
		base, ok := InfoBase(filepath.Base(path))
		if !ok {
			ix.skipped++
			continue
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			log.Debug().Err(err).Str("file", path).Msg("Failed to read match-info file")
			ix.skipped++
			continue
		}

		var info MatchInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			log.Debug().Err(err).Str("file", path).Msg("Skipping malformed match-info file")
			ix.skipped++
			continue
		}

		if !info.MatchID.Valid {
			ix.skipped++
			continue
		}

		ix.entries[base] = &info
	}

	log.Info().
		Int("indexed", len(ix.entries)).
		Int("skipped", ix.skipped).
		Str("dir", matchInfoDir).
		Msg("Match-info index built")

	return ix, nil
}

// Lookup returns the match-info record for a join key.
func (ix *Index) Lookup(base MatchBase) (*MatchInfo, bool) {
	info, ok := ix.entries[base]
	return info, ok
}

// Len returns the number of indexed match-info records.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Skipped returns the number of files omitted during the build.
func (ix *Index) Skipped() int {
	return ix.skipped
}
