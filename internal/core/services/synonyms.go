package services

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"github.com/surgebase/porter2"

	"github.com/custodia-labs/quala-cli/internal/core/domain"
	"github.com/custodia-labs/quala-cli/internal/core/mutations"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driven"
	"github.com/custodia-labs/quala-cli/internal/core/ports/driving"
	"github.com/custodia-labs/quala-cli/internal/logger"
)

// Ensure SynonymService implements the interface.
var _ driving.SynonymService = (*SynonymService)(nil)

const (
	// similarityThreshold is the Jaro-Winkler score above which a vocabulary
	// word counts as related.
	similarityThreshold = 0.88

	maxLocalSuggestions = 10
)

// SynonymService suggests and accepts alternative search terms.
type SynonymService struct {
	ws       *Workspace
	provider driven.SynonymProvider
}

// NewSynonymService creates a new synonym service.
// The provider is optional (can be nil); suggestions then come from the
// project vocabulary.
func NewSynonymService(ws *Workspace, provider driven.SynonymProvider) *SynonymService {
	return &SynonymService{ws: ws, provider: provider}
}

// Suggest returns candidates for word.
func (s *SynonymService) Suggest(ctx context.Context, word string) ([]string, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil, domain.ErrEmptyTerm
	}

	if s.provider != nil {
		candidates, err := s.provider.Synonyms(ctx, word)
		if err == nil {
			if cleaned := cleanCandidates(candidates, word); len(cleaned) > 0 {
				logger.Debug("%s returned %d synonyms for %q", s.provider.Name(), len(cleaned), word)
				return cleaned, nil
			}
			err = domain.ErrSynonymsUnavailable
		}
		logger.Warn("Synonym lookup via %s failed, using local suggestions: %v", s.provider.Name(), err)
	}

	if p, err := s.ws.Current(); err == nil {
		if related := relatedWords(p, word); len(related) > 0 {
			return related, nil
		}
	}
	return builtinVariants(word), nil
}

// Accept saves every term as a Search mark in one transition.
func (s *SynonymService) Accept(ctx context.Context, terms []string) ([]string, error) {
	var ids []string
	err := s.ws.Update(ctx, func(tx *Tx) error {
		sel := tx.Selection()
		if sel.Project == "" {
			return errNoProject
		}
		m := &mutations.ApplySynonyms{Project: sel.Project, Terms: terms, Options: tx.Options()}
		if err := tx.Apply(m); err != nil {
			return err
		}
		ids = m.MarkIDs
		return nil
	})
	return ids, err
}

// cleanCandidates trims, lower-cases and dedupes candidates, dropping word itself.
func cleanCandidates(candidates []string, word string) []string {
	seen := map[string]bool{strings.ToLower(word): true}
	var out []string
	for _, c := range candidates {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// relatedWords picks words of the project that share word's stem or are
// spelled closely enough to it.
func relatedWords(p *domain.Project, word string) []string {
	type scored struct {
		word  string
		score float32
	}
	target := strings.ToLower(word)
	stem := porter2.Stem(target)

	seen := map[string]bool{target: true}
	var hits []scored
	for _, f := range p.Files.Values() {
		for _, w := range strings.FieldsFunc(strings.ToLower(f.Content), notWordRune) {
			if seen[w] || len([]rune(w)) < 3 {
				continue
			}
			seen[w] = true
			if porter2.Stem(w) == stem {
				hits = append(hits, scored{word: w, score: 2})
				continue
			}
			sim, err := edlib.StringsSimilarity(target, w, edlib.JaroWinkler)
			if err == nil && sim >= similarityThreshold {
				hits = append(hits, scored{word: w, score: sim})
			}
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })

	out := make([]string, 0, min(len(hits), maxLocalSuggestions))
	for _, h := range hits {
		if len(out) == maxLocalSuggestions {
			break
		}
		out = append(out, h.word)
	}
	return out
}

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
}

// builtinVariants is the last resort: simple inflections of word.
func builtinVariants(word string) []string {
	w := strings.ToLower(word)
	return []string{w + "s", w + "ed", w + "ing"}
}
