package mnemonic

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tyler-smith/go-bip39/wordlists"

	"github.com/AlexZinkM/bitmark-wallet/internal/common"
)

// DictionarySize is the number of words every supported dictionary holds.
const DictionarySize = 2048

// Language identifies one word dictionary.
type Language int

const (
	English Language = iota
	ChineseTraditional
)

// languages lists every supported dictionary in detection priority order.
var languages = []Language{English, ChineseTraditional}

// Languages returns the supported languages in detection priority order.
func Languages() []Language {
	out := make([]Language, len(languages))
	copy(out, languages)
	return out
}

// Tag returns the resource tag the dictionary is loaded under.
func (l Language) Tag() string {
	switch l {
	case English:
		return "en"
	case ChineseTraditional:
		return "zh-tw"
	default:
		return fmt.Sprintf("unknown(%d)", int(l))
	}
}

func (l Language) String() string {
	return l.Tag()
}

// ParseLanguage resolves a resource tag such as "en" or "zh-tw".
func ParseLanguage(tag string) (Language, error) {
	for _, l := range languages {
		if strings.EqualFold(tag, l.Tag()) {
			return l, nil
		}
	}
	return 0, &common.ValidationError{Message: fmt.Sprintf("unsupported language %q", tag)}
}

type dictionary struct {
	words []string
	index map[string]int
}

func (d *dictionary) lookup(word string) (int, bool) {
	i, ok := d.index[word]
	return i, ok
}

// Each language is loaded at most once on first use and kept for the life of
// the process. sync.Once makes concurrent first access safe.
var cache = map[Language]*struct {
	once sync.Once
	dict *dictionary
	err  error
}{
	English:            {},
	ChineseTraditional: {},
}

func resource(l Language) []string {
	switch l {
	case English:
		return wordlists.English
	case ChineseTraditional:
		return wordlists.ChineseTraditional
	default:
		return nil
	}
}

func loadDictionary(l Language) (*dictionary, error) {
	entry, ok := cache[l]
	if !ok {
		return nil, &common.ValidationError{Message: fmt.Sprintf("unsupported language %s", l)}
	}
	entry.once.Do(func() {
		words := resource(l)
		if len(words) != DictionarySize {
			entry.err = fmt.Errorf("dictionary %s has %d words, want %d", l, len(words), DictionarySize)
			return
		}
		d := &dictionary{
			words: words,
			index: make(map[string]int, len(words)),
		}
		for i, w := range words {
			d.index[w] = i
		}
		entry.dict = d
	})
	return entry.dict, entry.err
}

// Words returns a copy of the dictionary for l.
func Words(l Language) ([]string, error) {
	d, err := loadDictionary(l)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(d.words))
	copy(out, d.words)
	return out, nil
}

// Detect returns the first language, in priority order, whose dictionary
// contains word.
func Detect(word string) (Language, error) {
	for _, l := range languages {
		d, err := loadDictionary(l)
		if err != nil {
			return 0, err
		}
		if _, ok := d.lookup(word); ok {
			return l, nil
		}
	}
	return 0, &common.ValidationError{Message: "unsupported language"}
}
