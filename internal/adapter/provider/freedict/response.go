package freedict

// The dictionary API answers with one apiEntry per etymology of the word.
type apiEntry struct {
	Word      string        `json:"word"`
	Phonetic  string        `json:"phonetic"`
	Phonetics []apiPhonetic `json:"phonetics"`
	Meanings  []apiMeaning  `json:"meanings"`
}

type apiPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

// Synonyms appear both per meaning and per definition; a sense gets the
// union of the two.
type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
	Synonyms     []string        `json:"synonyms"`
}

type apiDefinition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
}

// synonyms merges definition and meaning synonyms, definition first,
// dropping blanks and repeats.
func (d apiDefinition) synonyms(m apiMeaning) []string {
	var out []string
	seen := make(map[string]struct{}, len(d.Synonyms)+len(m.Synonyms))
	for _, list := range [][]string{d.Synonyms, m.Synonyms} {
		for _, s := range list {
			if _, dup := seen[s]; s == "" || dup {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	return out
}
