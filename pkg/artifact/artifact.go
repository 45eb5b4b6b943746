// Package artifact reads the compact dictionary-indexed utterance artifact
// produced by external ingestion tooling: a token dictionary plus phrases
// encoded as sequences of indexes into it. Expanding an artifact yields
// pre-tokenized phrases ready for queryprep.WithTokenizedUtterances.
package artifact

import (
	"encoding/json"
	"fmt"

	"github.com/hack-pad/hackpadfs"
)

// Version is the only artifact format version this reader accepts.
const Version = 1

// Artifact is the decoded on-disk form.
type Artifact struct {
	Version int      `json:"version"`
	Tokens  []string `json:"tokens"`
	Phrases [][]int  `json:"phrases"`
}

// Decode parses artifact bytes and validates the version and every
// dictionary index. Unlike the matcher adoption path, this is a collaborator
// boundary: malformed data is reported, not trusted.
func Decode(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}
	if a.Version != Version {
		return nil, fmt.Errorf("unsupported artifact version %d (want %d)", a.Version, Version)
	}
	for i, ph := range a.Phrases {
		if len(ph) == 0 {
			return nil, fmt.Errorf("phrase %d is empty", i)
		}
		for _, idx := range ph {
			if idx < 0 || idx >= len(a.Tokens) {
				return nil, fmt.Errorf("phrase %d: token index %d out of range [0,%d)", i, idx, len(a.Tokens))
			}
		}
	}
	return &a, nil
}

// Load reads and decodes an artifact from the given filesystem.
func Load(fsys hackpadfs.FS, path string) (*Artifact, error) {
	data, err := hackpadfs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return Decode(data)
}

// Expand materializes the phrase index sequences into token slices.
func (a *Artifact) Expand() [][]string {
	phrases := make([][]string, len(a.Phrases))
	for i, ph := range a.Phrases {
		toks := make([]string, len(ph))
		for j, idx := range ph {
			toks[j] = a.Tokens[idx]
		}
		phrases[i] = toks
	}
	return phrases
}
