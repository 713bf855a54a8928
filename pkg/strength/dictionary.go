// Copyright (c) 2022. Alvin Baena.
// SPDX-License-Identifier: MIT

package strength

import (
	"bufio"
	"github.com/alvinbaena/pwd-analyzer/internal/util"
	"github.com/jfcg/sorty/v2"
	"github.com/rs/zerolog/log"
	"io"
	"math"
	"os"
	"strings"
	"unicode/utf8"
)

// Dictionary is an immutable set of lowercase common passwords. It is never
// modified after construction, so one instance can serve any number of
// concurrent evaluations. A nil *Dictionary behaves as an empty one.
type Dictionary struct {
	set map[string]struct{}
	// sorted ascending, so scans report the same word every time
	words []string
}

// NewDictionary builds a Dictionary from words. Every word is trimmed and
// lowercased; blank words and duplicates are dropped.
func NewDictionary(words ...string) *Dictionary {
	clean := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			clean = append(clean, w)
		}
	}

	return newSortedDictionary(clean)
}

func newSortedDictionary(words []string) *Dictionary {
	sorty.SortSlice(words)
	words = dedup(words)

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}

	return &Dictionary{set: set, words: words}
}

// initialLineBuffer is the starting capacity of line scanners. Lines of any
// length are accepted, the buffer grows as needed.
const initialLineBuffer = 64 * 1024

// ReadDictionary reads one word per line from r.
func ReadDictionary(r io.Reader) (*Dictionary, error) {
	return readDictionary(r, 0)
}

func readDictionary(r io.Reader, sizeHint uint64) (*Dictionary, error) {
	words := make([]string, 0, sizeHint)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialLineBuffer), math.MaxInt)
	for scanner.Scan() {
		if w := strings.ToLower(strings.TrimSpace(scanner.Text())); w != "" {
			words = append(words, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return newSortedDictionary(words), nil
}

// LoadDictionary reads the line-delimited file fileName. A file that is missing
// or cannot be read results in an empty Dictionary: evaluations then simply
// skip every dictionary based check.
func LoadDictionary(fileName string) *Dictionary {
	s := util.Stats()
	defer s()

	file, err := os.Open(fileName)
	if err != nil {
		log.Warn().Err(err).Msgf("could not open dictionary %s, dictionary checks are disabled", fileName)
		return NewDictionary()
	}

	defer func(file *os.File) {
		if err := file.Close(); err != nil {
			log.Error().Err(err).Msg("error closing dictionary file")
		}
	}(file)

	lines, size, err := estimateFileLines(file)
	if err != nil {
		log.Warn().Err(err).Msgf("could not read dictionary %s, dictionary checks are disabled", fileName)
		return NewDictionary()
	}
	// Each word is held twice: once in the set, once in the sorted slice.
	util.CheckRam(2 * size)

	dict, err := readDictionary(file, lines)
	if err != nil {
		log.Warn().Err(err).Msgf("could not read dictionary %s, dictionary checks are disabled", fileName)
		return NewDictionary()
	}

	log.Debug().Msgf("dictionary %s loaded with %d words", fileName, dict.Len())
	return dict
}

// Contains reports whether word, compared as is, is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	if d == nil {
		return false
	}

	_, ok := d.set[word]
	return ok
}

// Len is the number of distinct words.
func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}

	return len(d.words)
}

// Words returns a copy of the words in ascending order.
func (d *Dictionary) Words() []string {
	if d == nil {
		return nil
	}

	return append([]string(nil), d.words...)
}

// firstIn returns the first word, in ascending order, of at least minLen
// characters that is a substring of s.
func (d *Dictionary) firstIn(s string, minLen int) (string, bool) {
	if d == nil {
		return "", false
	}

	for _, w := range d.words {
		if minLen > 0 && utf8.RuneCountInString(w) < minLen {
			continue
		}
		if strings.Contains(s, w) {
			return w, true
		}
	}

	return "", false
}

// estimateFileLines guesses the amount of lines of f from a sample of at most
// 1 MiB, and returns it along with the file size. f is rewound afterwards;
// failing to do so is the only error.
func estimateFileLines(f *os.File) (lines uint64, size uint64, err error) {
	const estimateLimit = 1024 * 1024

	info, err := f.Stat()
	if err != nil || info.Size() == 0 {
		return 0, 0, nil
	}

	size = uint64(info.Size())
	buffer := make([]byte, int64(math.Min(float64(size), estimateLimit)))
	n, rerr := io.ReadFull(f, buffer)
	// Rewind so the actual read does not miss the sampled chunk
	if _, err = f.Seek(0, io.SeekStart); err != nil {
		return 0, size, err
	}
	if rerr != nil && rerr != io.ErrUnexpectedEOF {
		return 0, size, nil
	}

	sample := uint64(0)
	for _, b := range buffer[:n] {
		if b == '\n' {
			sample++
		}
	}

	return sample * size / uint64(n), size, nil
}

func dedup(slice []string) []string {
	if len(slice) < 2 {
		return slice
	}

	var e = 1
	for i := 1; i < len(slice); i++ {
		if slice[i] == slice[i-1] {
			continue
		}
		slice[e] = slice[i]
		e++
	}

	return slice[:e]
}
