package lints

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/reusee/strudo/browsers"
	"github.com/reusee/strudo/logs"
	"github.com/reusee/strudo/tracks"
)

// LintTracks runs every pattern body through the browser-hosted Strudel
// runtime and returns failing paths mapped to their error messages.
type LintTracks func(ctx context.Context, trackList []*tracks.Track) (map[string]string, error)

func (Module) LintTracks(
	newSession browsers.NewSession,
	logger logs.Logger,
) LintTracks {
	return func(ctx context.Context, trackList []*tracks.Track) (map[string]string, error) {

		var eligible []*tracks.Track
		for _, track := range trackList {
			if track.Code != "" {
				eligible = append(eligible, track)
			}
		}
		if len(eligible) == 0 {
			return nil, nil
		}

		session, err := newSession(ctx, browsers.LintHarness)
		if err != nil {
			return nil, err
		}
		defer session.Close()

		failures := make(map[string]string)
		for _, track := range eligible {
			logger.InfoContext(ctx, "linting pattern",
				"path", track.Path,
			)
			result, err := lintOne(session, track.Code)
			if err != nil {
				failures[track.Path] = err.Error()
				continue
			}
			if !result.OK {
				message := result.Error
				if message == "" {
					message = "Unknown lint error"
				}
				failures[track.Path] = message
			}
		}

		if len(failures) == 0 {
			return nil, nil
		}
		return failures, nil
	}
}

type lintResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func lintOne(session *browsers.Session, code string) (*lintResult, error) {
	encoded, err := json.Marshal(code)
	if err != nil {
		return nil, err
	}
	var result lintResult
	if err := session.Eval(
		fmt.Sprintf("lintStrudel(%s)", encoded),
		&result,
	); err != nil {
		return nil, err
	}
	return &result, nil
}
