package chat

import (
	"context"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog/log"
)

const (
	maxSuggestions = 4
	// maxEditDistance bounds how far a queued phrase may be from the typed
	// word before it stops being a plausible completion.
	maxEditDistance = 3
)

// commonPhrases seed the offline ranker. The remote endpoint produces
// context-aware continuations; these only cover the connection-lost case.
var commonPhrases = []string{
	"I have been experiencing",
	"I would like to ask about",
	"My symptoms started",
	"The pain is located in",
	"I am currently taking",
	"I have an allergy to",
	"My last appointment was",
	"Can you explain my results",
	"I need a prescription refill",
	"I have a fever",
	"I have a headache",
	"I feel dizzy",
}

// Suggest fetches text continuations for a partial input. When the remote
// endpoint is unreachable it falls back to ranking a fixed phrase list by
// edit distance, so typing assistance degrades instead of disappearing.
func (o *Orchestrator) Suggest(ctx context.Context, text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	suggestions, err := o.gw.Autocomplete(ctx, text)
	if err == nil {
		return suggestions
	}
	log.Debug().Err(err).Msg("remote autocomplete failed, using local ranking")

	return rankPhrases(text, commonPhrases)
}

// rankPhrases orders candidate phrases by the edit distance between the last
// typed word and each phrase's corresponding word, closest first. Ties break
// lexicographically so results are deterministic.
func rankPhrases(text string, phrases []string) []string {
	words := strings.Fields(strings.ToLower(text))
	if len(words) == 0 {
		return nil
	}
	last := words[len(words)-1]

	type scored struct {
		phrase   string
		distance int
	}
	candidates := make([]scored, 0, len(phrases))
	for _, phrase := range phrases {
		distance := phraseDistance(last, phrase)
		if distance > maxEditDistance {
			continue
		}
		candidates = append(candidates, scored{phrase: phrase, distance: distance})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].phrase < candidates[j].phrase
	})

	result := make([]string, 0, maxSuggestions)
	for _, c := range candidates {
		result = append(result, c.phrase)
		if len(result) == maxSuggestions {
			break
		}
	}
	return result
}

// phraseDistance is the smallest edit distance between word and any word of
// the phrase, so "headach" still finds "I have a headache".
func phraseDistance(word, phrase string) int {
	best := -1
	for _, candidate := range strings.Fields(strings.ToLower(phrase)) {
		d := levenshtein.ComputeDistance(word, candidate)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return maxEditDistance + 1
	}
	return best
}
