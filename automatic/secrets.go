package automatic

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/domino14/word-golib/cache"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/domino14/hangman/config"
	"github.com/domino14/hangman/lexicon"
)

// DefaultSecret is played when nothing else was asked for.
const DefaultSecret = "avocado"

// Baseline is a fixed list of secrets used to compare strategy changes.
var Baseline = []string{
	"comaker", "cumulate", "eruptive", "factual", "monadism",
	"mus", "nagging", "oses", "remembered", "spodumenes",
	"stereoisomers", "toxics", "trichromats", "triose", "uniformed",
}

// NormalizeSecrets lowercases and trims each secret and drops blanks.
func NormalizeSecrets(secrets []string) []string {
	out := lo.Map(secrets, func(s string, _ int) string {
		return strings.ToLower(strings.TrimSpace(s))
	})
	return lo.Compact(out)
}

// ReadBatch reads one secret per line. Blank lines and lines starting with
// # are skipped.
func ReadBatch(path string) ([]string, error) {
	f, _, err := cache.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening batch file: %w", err)
	}
	defer f.Close()
	var secrets []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		secrets = append(secrets, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return NormalizeSecrets(secrets), nil
}

// RandomSecrets picks n words from the corpus, with replacement. With
// length > 0 only words of that length are drawn.
func RandomSecrets(c *lexicon.Corpus, n, length int, intn func(int) int) []string {
	if intn == nil {
		intn = frand.Intn
	}
	total := c.Len()
	if length > 0 {
		total = c.GroupSize(length)
	}
	if total == 0 || n <= 0 {
		return nil
	}
	return lo.Times(n, func(int) string {
		i := intn(total)
		if length > 0 {
			return c.At(length, i)
		}
		for _, l := range c.Lengths() {
			if i < c.GroupSize(l) {
				return c.At(l, i)
			}
			i -= c.GroupSize(l)
		}
		return ""
	})
}

// Secrets gathers the secrets the configuration asks for, in this order:
// explicit secrets and positional arguments, the batch file, the baseline list, random words. It
// returns nil when none were requested.
func Secrets(cfg *config.Config, c *lexicon.Corpus) ([]string, error) {
	secrets := NormalizeSecrets(cfg.GetStringSlice(config.ConfigSecrets))
	secrets = append(secrets, NormalizeSecrets(cfg.Args)...)
	if batch := cfg.GetString(config.ConfigBatch); batch != "" {
		b, err := ReadBatch(batch)
		if err != nil {
			return nil, err
		}
		secrets = append(secrets, b...)
	}
	if cfg.GetBool(config.ConfigBaseline) {
		secrets = append(secrets, Baseline...)
	}
	if n := cfg.GetInt(config.ConfigRandom); n > 0 {
		secrets = append(secrets, RandomSecrets(c, n, cfg.GetInt(config.ConfigRandomLength), nil)...)
	}
	return secrets, nil
}
