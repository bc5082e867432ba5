package replacer

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Rule is a single source word and its replacement.
type Rule struct {
	Word        string `yaml:"word" json:"word"`
	Replacement string `yaml:"replacement" json:"replacement"`
}

// CharReplacer replaces registered words in text, preferring the longest match.
type CharReplacer struct {
	singles map[rune]string
	multi   []multiRule
}

type multiRule struct {
	word        string
	replacement string
	length      int
}

// New returns an empty replacer.
func New() *CharReplacer {
	return &CharReplacer{singles: make(map[rune]string)}
}

// NewFromRules registers all rules and calls Ready.
func NewFromRules(rules ...Rule) (*CharReplacer, error) {
	r := New()
	for _, rule := range rules {
		if err := r.Register(rule.Word, rule.Replacement); err != nil {
			return nil, err
		}
	}
	r.Ready()
	return r, nil
}

// Register adds a rule. A single-rune word that is already registered keeps
// its first replacement; the new one is silently ignored.
func (r *CharReplacer) Register(word, replacement string) error {
	if word == "" {
		return ErrEmptyWord
	}

	if utf8.RuneCountInString(word) == 1 {
		c, _ := utf8.DecodeRuneInString(word)
		if _, exists := r.singles[c]; !exists {
			r.singles[c] = replacement
		}
		return nil
	}

	r.multi = append(r.multi, multiRule{
		word:        word,
		replacement: replacement,
		length:      utf8.RuneCountInString(word),
	})
	return nil
}

// RegisterPtr is Register for callers holding an optional replacement.
func (r *CharReplacer) RegisterPtr(word string, replacement *string) error {
	if word == "" {
		return ErrEmptyWord
	}
	if replacement == nil {
		return ErrNilReplacement
	}
	return r.Register(word, *replacement)
}

// Ready drops duplicated multi-rune words, keeping the first one, and sorts
// the rest longest first. It must run before Replace.
func (r *CharReplacer) Ready() {
	seen := make(map[string]struct{}, len(r.multi))
	rules := make([]multiRule, 0, len(r.multi))
	for _, rule := range r.multi {
		if _, dup := seen[rule.word]; dup {
			continue
		}
		seen[rule.word] = struct{}{}
		rules = append(rules, rule)
	}

	slices.SortStableFunc(rules, func(a, b multiRule) int {
		if a.length != b.length {
			return b.length - a.length
		}
		return strings.Compare(a.word, b.word)
	})

	r.multi = rules
}

// Replace returns text with every registered word replaced.
func (r *CharReplacer) Replace(text string) string {
	if text == "" {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for i := 0; i < len(text); {
		if n, ok := r.replaceMulti(text[i:], &b); ok {
			i += n
			continue
		}

		c, size := utf8.DecodeRuneInString(text[i:])
		if replacement, ok := r.singles[c]; ok {
			b.WriteString(replacement)
		} else {
			b.WriteString(text[i : i+size])
		}
		i += size
	}

	return b.String()
}

// ReplacePtr is Replace for optional text; nil stays nil.
func (r *CharReplacer) ReplacePtr(text *string) *string {
	if text == nil {
		return nil
	}
	replaced := r.Replace(*text)
	return &replaced
}

// Len reports the number of registered single and multi-rune rules.
func (r *CharReplacer) Len() int {
	return len(r.singles) + len(r.multi)
}

// Words returns the multi-rune words in match order.
func (r *CharReplacer) Words() []string {
	words := make([]string, len(r.multi))
	for i, rule := range r.multi {
		words[i] = rule.word
	}
	return words
}

func (r *CharReplacer) replaceMulti(rest string, b *strings.Builder) (int, bool) {
	for _, rule := range r.multi {
		if strings.HasPrefix(rest, rule.word) {
			b.WriteString(rule.replacement)
			return len(rule.word), true
		}
	}
	return 0, false
}
