package parser

import (
	"fmt"
	"io"

	"golang.org/x/tools/cover"

	"github.com/chmouel/go-genbadge/internal/model"
)

// ProfileParser reads Go coverage profiles (go test -coverprofile). Lines
// are counted as statements, the way `go tool cover -func` does; profiles
// carry no branch data.
type ProfileParser struct{}

// ParseCoverage implements CoverageParser.
func (p *ProfileParser) ParseCoverage(r io.Reader, source string) (*model.CoverageStats, error) {
	profiles, err := cover.ParseProfilesFromReader(r)
	if err != nil {
		return nil, &ParseError{Source: source, Err: fmt.Errorf("parsing coverage profile: %w", err)}
	}

	stats := &model.CoverageStats{}
	for _, prof := range profiles {
		total, covered := countStatements(prof.Blocks)
		stats.LinesValid += total
		stats.LinesCovered += covered
	}
	return stats, nil
}

func countStatements(blocks []cover.ProfileBlock) (total, covered int) {
	for _, b := range blocks {
		total += b.NumStmt
		if b.Count > 0 {
			covered += b.NumStmt
		}
	}
	return total, covered
}
