// Package postprocess fixes systematic Whisper errors in Turkish
// output: garbled words, mangled proper nouns, wrong special characters
// and missing question marks. All passes are pure text rewrites.
package postprocess

import (
	"strings"
	"unicode"
)

type rule struct {
	wrong   string
	correct string
}

// replacements are known Whisper hallucination/garble patterns for
// Turkish. Only high-confidence replacements.
var replacements = []rule{
	{"göğlen", "görülen"},
	{"göğünmeyen", "görünmeyen"},
	{"göğlü", "görülü"},
	{"bilepini", "deneyimini"},
}

// properNouns are known proper nouns that Whisper garbles in Turkish
// audio.
var properNouns = []rule{
	{"Peter Dubek", "Peter Drucker"},
	{"Aydigur Şahina", "Edgar Schein"},
	{"Antağı de Sen", "Antoine de Saint"},
}

// charFixes are common outputs with wrong Turkish special characters.
// Conservative: only patterns where Whisper consistently gets it wrong.
var charFixes = []rule{
	{"hültür", "kültür"},
	{"kültüğü", "kültürü"},
}

// questionParticles lists all vowel-harmony variants, extended forms
// first so the longest match wins.
var questionParticles = []string{
	"mısınız", "misiniz", "musunuz", "müsünüz",
	"mıyız", "miyiz", "muyuz", "müyüz",
	"mısın", "misin", "musun", "müsün",
	"mıdır", "midir", "mudur", "müdür",
	"mı", "mi", "mu", "mü",
}

// Process applies all passes in order. The order is a contract: the
// question-particle pass must see the corrected text.
func Process(text string) string {
	text = fixSubstitutions(text)
	text = fixProperNouns(text)
	text = fixTurkishChars(text)
	return fixQuestionMarks(text)
}

func applyRules(text string, rules []rule) string {
	for _, r := range rules {
		text = strings.ReplaceAll(text, r.wrong, r.correct)
	}
	return text
}

func fixSubstitutions(text string) string {
	return applyRules(text, replacements)
}

func fixProperNouns(text string) string {
	return applyRules(text, properNouns)
}

func fixTurkishChars(text string) string {
	return applyRules(text, charFixes)
}

// fixQuestionMarks appends a question mark when the text ends with a
// standalone Turkish question particle.
func fixQuestionMarks(text string) string {
	trimmed := strings.TrimRightFunc(text, unicode.IsSpace)

	// Already has a question mark
	if strings.HasSuffix(trimmed, "?") {
		return text
	}

	// Strip trailing punctuation to check the bare word
	stripped := strings.TrimRight(trimmed, ".!,;:")

	lower := strings.ToLower(stripped)
	for _, particle := range questionParticles {
		if !strings.HasSuffix(lower, particle) {
			continue
		}

		// The particle must be a standalone word, preceded by
		// whitespace or the start of the string.
		before := lower[:len(lower)-len(particle)]
		if before != "" {
			r := []rune(before)
			if !unicode.IsSpace(r[len(r)-1]) {
				continue
			}
		}

		// Truncate at the end of the particle, discarding whatever
		// punctuation was stripped.
		return stripped + "?"
	}

	return text
}
