package lesson

import (
	"strconv"
	"strings"
)

// LetterInfo is what the assistant says about a letter.
type LetterInfo struct {
	Pronunciation string `yaml:"pronunciation" json:"pronunciation"`
	Example       string `yaml:"example" json:"example"`
}

// Phrases are the feedback templates. Placeholders: {letter}, {points},
// {pronunciation}, {example}.
type Phrases struct {
	Greeting      string `yaml:"greeting"`
	Intro         string `yaml:"intro"`
	Success       string `yaml:"success"`
	SuccessSpoken string `yaml:"success_spoken"`
	Retry         string `yaml:"retry"`
	TooShort      string `yaml:"too_short"`
	TracingOn     string `yaml:"tracing_on"`
	TracingOff    string `yaml:"tracing_off"`
}

// Language bundles a letter table and its phrases.
type Language struct {
	Name    string                `yaml:"name"`
	Letters map[string]LetterInfo `yaml:"letters"`
	Phrases Phrases               `yaml:"phrases"`
}

var englishPhrases = Phrases{
	Greeting:      "Hello! Press space to hear the letter, or trace it with the mouse!",
	Intro:         "The letter is {letter}. It sounds like {pronunciation}. {example}.",
	Success:       "Excellent! You traced the letter {letter}!",
	SuccessSpoken: "Well done! You got the letter {letter}!",
	Retry:         "Try tracing the letter {letter} again. Points traced: {points}",
	TooShort:      "That was too short. Try tracing the letter {letter} more slowly.",
	TracingOn:     "Trace the letter {letter} with your mouse or finger!",
	TracingOff:    "Tracing mode is off.",
}

// Info returns the table entry for a letter, falling back to the letter
// itself as its pronunciation.
func (l Language) Info(letter rune) LetterInfo {
	if info, ok := l.Letters[string(letter)]; ok {
		if info.Pronunciation == "" {
			info.Pronunciation = string(letter)
		}
		return info
	}
	return LetterInfo{Pronunciation: string(letter)}
}

func (l Language) phrase(pick func(Phrases) string) string {
	if s := pick(l.Phrases); s != "" {
		return s
	}
	return pick(englishPhrases)
}

// Render fills a template for the given letter.
func (l Language) Render(tmpl string, letter rune, points int) string {
	info := l.Info(letter)
	r := strings.NewReplacer(
		"{letter}", string(letter),
		"{points}", strconv.Itoa(points),
		"{pronunciation}", info.Pronunciation,
		"{example}", info.Example,
	)
	out := r.Replace(tmpl)
	// An empty example leaves a dangling ". ." behind.
	out = strings.ReplaceAll(out, ". .", ".")
	return strings.TrimSpace(out)
}
