// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"math/rand"
	"strings"
)

// interestIndicators mark sentences in the researcher's additional context
// that state an explicit research direction.
var interestIndicators = []string{
	"interested in", "want to study", "focus on", "research on",
	"investigate", "explore", "work on", "curious about", "question is",
	"wondering about", "like to understand", "project on",
}

const maxContextTopics = 4

// contextTopics extracts explicit research directions from free-form
// additional context. A sentence counts as a direction when it contains an
// interest indicator and enough text to be meaningful.
func contextTopics(additionalContext string) []string {
	if strings.TrimSpace(additionalContext) == "" {
		return nil
	}

	var topics []string
	seen := make(map[string]bool)
	for _, sentence := range strings.Split(additionalContext, ".") {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 20 {
			continue
		}
		lower := strings.ToLower(sentence)
		for _, indicator := range interestIndicators {
			if strings.Contains(lower, indicator) {
				if !seen[sentence] {
					seen[sentence] = true
					topics = append(topics, sentence)
				}
				break
			}
		}
		if len(topics) == maxContextTopics {
			break
		}
	}
	return topics
}

// seedTopics picks the directions that steer question generation. Context
// topics stated by the researcher win outright; otherwise topics are drawn
// from the current challenges of the relevant subfields.
func seedTopics(relevant []Subfield, additionalContext string, rng *rand.Rand) []string {
	if topics := contextTopics(additionalContext); len(topics) > 0 {
		return topics
	}

	var pool []string
	for _, sf := range relevant {
		challenges := append([]string(nil), sf.CurrentChallenges...)
		rng.Shuffle(len(challenges), func(i, j int) {
			challenges[i], challenges[j] = challenges[j], challenges[i]
		})
		n := 2
		if len(challenges) < n {
			n = len(challenges)
		}
		pool = append(pool, challenges[:n]...)
	}

	if len(pool) == 0 {
		names := make([]string, len(relevant))
		for i, sf := range relevant {
			names[i] = sf.Name
		}
		return []string{"Explore topics within " + strings.Join(names, ", ")}
	}

	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	n := len(relevant)
	if n < 1 {
		n = 1
	}
	if n > len(pool) {
		n = len(pool)
	}

	var topics []string
	seen := make(map[string]bool)
	for _, t := range pool[:n] {
		if !seen[t] {
			seen[t] = true
			topics = append(topics, t)
		}
	}
	return topics
}
