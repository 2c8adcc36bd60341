package ner

import (
	"strings"
	"unicode"

	"github.com/digimosa/pii-redact/internal/models"
)

// RuleRecognizer is the built-in, fully offline recognition backend: a
// gazetteer- and trigger-driven tagger for German free-text entities. It
// is deterministic by construction and needs no loaded model, which makes
// it the default backend and the reference behavior for tests.
type RuleRecognizer struct{}

func NewRuleRecognizer() *RuleRecognizer {
	return &RuleRecognizer{}
}

type token struct {
	text  string
	start int // code-point offset
	end   int
}

// honorifics and academic titles that introduce a person name. The title
// itself is treated as context and kept outside the candidate span.
var personTitles = map[string]bool{
	"herr": true, "herrn": true, "frau": true, "dr": true, "prof": true,
	"professor": true, "dipl": true,
}

// professions that, directly before a capitalized name, both confirm the
// name and are themselves reportable as PROFESSION.
var professionWords = map[string]bool{
	"anwalt": true, "anwältin": true, "arzt": true, "ärztin": true,
	"richter": true, "richterin": true, "notar": true, "notarin": true,
	"lehrer": true, "lehrerin": true, "ingenieur": true, "ingenieurin": true,
	"steuerberater": true, "steuerberaterin": true, "apotheker": true,
	"apothekerin": true, "pfarrer": true, "pfarrerin": true,
}

// common German given names; membership promotes a capitalized bigram to
// a person candidate.
var firstNames = map[string]bool{
	"alexander": true, "andrea": true, "andreas": true, "angela": true,
	"anna": true, "annalena": true, "bernd": true, "birgit": true,
	"christian": true, "christine": true, "claudia": true, "daniel": true,
	"david": true, "dirk": true, "frank": true, "friedrich": true,
	"hans": true, "heike": true, "helmut": true, "jan": true, "jens": true,
	"julia": true, "jürgen": true, "karin": true, "karl": true,
	"katrin": true, "klaus": true, "lars": true, "laura": true, "lea": true,
	"leon": true, "lisa": true, "manfred": true, "maria": true,
	"markus": true, "martin": true, "martina": true, "matthias": true,
	"max": true, "michael": true, "monika": true, "nicole": true,
	"olaf": true, "peter": true, "petra": true, "ralf": true, "robert": true,
	"sabine": true, "sandra": true, "stefan": true, "susanne": true,
	"thomas": true, "torsten": true, "ursula": true, "uwe": true,
	"werner": true, "wolfgang": true,
}

// frequent German surnames, used to confirm the second half of a bigram.
var lastNames = map[string]bool{
	"bauer": true, "becker": true, "braun": true, "fischer": true,
	"habeck": true, "hartmann": true, "hoffmann": true, "hofmann": true,
	"jung": true, "klein": true, "koch": true, "könig": true, "krause": true,
	"krüger": true, "lange": true, "lehmann": true, "maier": true,
	"mayer": true, "meier": true, "meyer": true, "müller": true,
	"neumann": true, "richter": true, "scholz": true, "schmid": true,
	"schmidt": true, "schmitz": true, "schneider": true, "schröder": true,
	"schulz": true, "schwarz": true, "wagner": true, "weber": true,
	"werner": true, "wolf": true, "zimmermann": true,
}

// larger German cities for the LOCATION gazetteer.
var cities = map[string]bool{
	"aachen": true, "augsburg": true, "berlin": true, "bielefeld": true,
	"bochum": true, "bonn": true, "braunschweig": true, "bremen": true,
	"chemnitz": true, "dortmund": true, "dresden": true, "duisburg": true,
	"düsseldorf": true, "erfurt": true, "essen": true, "frankfurt": true,
	"freiburg": true, "hamburg": true, "hannover": true, "karlsruhe": true,
	"kassel": true, "kiel": true, "köln": true, "leipzig": true,
	"lübeck": true, "magdeburg": true, "mainz": true, "mannheim": true,
	"münchen": true, "münster": true, "nürnberg": true, "potsdam": true,
	"rostock": true, "saarbrücken": true, "stuttgart": true,
	"wiesbaden": true, "wuppertal": true,
}

// legal-form suffixes closing an organization name.
var orgSuffixes = map[string]bool{
	"gmbh": true, "ag": true, "se": true, "kg": true, "ug": true,
	"ev": true, "ohg": true, "gbr": true,
}

// capitalized function words that must never be read as a surname.
var nameStopwords = map[string]bool{
	"der": true, "die": true, "das": true, "und": true, "oder": true,
	"sie": true, "ich": true, "wir": true, "ihr": true, "er": true,
	"es": true, "ein": true, "eine": true, "mein": true, "meine": true,
	"bitte": true, "sehr": true, "heute": true, "morgen": true,
}

// Recognize tags persons, organizations, locations and professions.
// Candidates may overlap each other and pattern output; the resolver owns
// conflict resolution.
func (r *RuleRecognizer) Recognize(u *models.TextUnit) ([]models.Candidate, error) {
	toks := tokenize(u)
	var out []models.Candidate

	for i := 0; i < len(toks); i++ {
		lower := strings.ToLower(toks[i].text)

		// Organization: capitalized run closed by a legal-form suffix.
		if orgSuffixes[lower] && i > 0 {
			start := i - 1
			for start > 0 && isNameToken(toks[start-1]) && i-start < 4 {
				start--
			}
			if isNameToken(toks[start]) {
				out = append(out, candidate(models.CategoryOrganization, toks[start].start, toks[i].end, 0.85, "ORG"))
				continue
			}
		}

		// Person introduced by a title or profession word.
		if personTitles[lower] || professionWords[lower] {
			j := i + 1
			for j < len(toks) && j-i <= 3 && isNameToken(toks[j]) {
				j++
			}
			if j > i+1 {
				if professionWords[lower] {
					out = append(out, candidate(models.CategoryProfession, toks[i].start, toks[i].end, 0.7, "PROFESSION"))
				}
				out = append(out, candidate(models.CategoryPerson, toks[i+1].start, toks[j-1].end, 0.9, "PER"))
				i = j - 1
				continue
			}
		}

		// Gazetteer first name followed by a plausible surname.
		if firstNames[lower] && isCapitalized(toks[i].text) && i+1 < len(toks) && isNameToken(toks[i+1]) {
			conf := 0.85
			if lastNames[strings.ToLower(toks[i+1].text)] {
				conf = 0.92
			}
			out = append(out, candidate(models.CategoryPerson, toks[i].start, toks[i+1].end, conf, "PER"))
			i++
			continue
		}

		// City gazetteer.
		if cities[lower] && isCapitalized(toks[i].text) {
			out = append(out, candidate(models.CategoryLocation, toks[i].start, toks[i].end, 0.8, "LOC"))
		}
	}

	return out, nil
}

func candidate(cat models.Category, start, end int, conf float64, label string) models.Candidate {
	return models.Candidate{
		Category:   cat,
		Start:      start,
		End:        end,
		Source:     models.SourceModel,
		Confidence: conf,
		Metadata:   &models.Metadata{Label: label},
	}
}

// isNameToken reports whether a token can be part of a name span.
func isNameToken(t token) bool {
	if !isCapitalized(t.text) {
		return false
	}
	return !nameStopwords[strings.ToLower(t.text)]
}

func isCapitalized(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// tokenize splits the unit into letter runs with code-point offsets.
// Hyphens inside a word are kept so double names stay one token.
func tokenize(u *models.TextUnit) []token {
	var toks []token
	runes := []rune(u.String())
	i := 0
	for i < len(runes) {
		if !unicode.IsLetter(runes[i]) {
			i++
			continue
		}
		j := i
		for j < len(runes) && (unicode.IsLetter(runes[j]) ||
			(runes[j] == '-' && j+1 < len(runes) && unicode.IsLetter(runes[j+1]))) {
			j++
		}
		toks = append(toks, token{text: string(runes[i:j]), start: i, end: j})
		i = j
	}
	return toks
}
