package pipeline

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digimosa/pii-redact/internal/config"
	"github.com/digimosa/pii-redact/internal/models"
	"github.com/digimosa/pii-redact/internal/ner"
)

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Workers = 1
	p, err := New(cfg, ner.NewRuleRecognizer(), nil)
	require.NoError(t, err)
	return p
}

func processOneText(t *testing.T, p *Pipeline, text string) models.ResultRecord {
	t.Helper()
	results, err := p.ProcessBatch([]string{text})
	require.NoError(t, err)
	require.Len(t, results, 1)
	return results[0]
}

// runeIndex converts the byte position of sub in s to code points.
func runeIndex(t *testing.T, s, sub string) int {
	t.Helper()
	i := strings.Index(s, sub)
	require.GreaterOrEqual(t, i, 0)
	return utf8.RuneCountInString(s[:i])
}

func TestProcessEmailAndURLOnly(t *testing.T) {
	in := "Erreichen Sie mich unter ojaswini@gmail.com oder besuchen Sie www.hamburg.de/service für Termine."
	rec := processOneText(t, newPipeline(t), in)

	require.True(t, rec.HasPII)
	require.Len(t, rec.Detections, 2)

	email := rec.Detections[0]
	assert.Equal(t, models.CategoryEmail, email.Category)
	assert.Equal(t, "ojaswini@gmail.com", email.Text)
	assert.Equal(t, runeIndex(t, in, "ojaswini@gmail.com"), email.Start)
	assert.Equal(t, email.Start+utf8.RuneCountInString(email.Text), email.End)

	url := rec.Detections[1]
	assert.Equal(t, models.CategoryURL, url.Category)
	assert.Equal(t, "www.hamburg.de/service", url.Text)
	assert.Equal(t, runeIndex(t, in, "www.hamburg.de/service"), url.Start)

	assert.Equal(t,
		"Erreichen Sie mich unter [EMAIL] oder besuchen Sie [URL] für Termine.",
		rec.AnonymizedText)
}

func TestProcessIBANWinsOverCreditCard(t *testing.T) {
	in := "Überweisen Sie an DE43 2127 2486 1917 6073 77 bis Freitag."
	rec := processOneText(t, newPipeline(t), in)

	require.Len(t, rec.Detections, 1)
	assert.Equal(t, models.CategoryIBAN, rec.Detections[0].Category)
	assert.Equal(t, "DE43 2127 2486 1917 6073 77", rec.Detections[0].Text)
	assert.Equal(t, "Überweisen Sie an [IBAN] bis Freitag.", rec.AnonymizedText)
}

func TestProcessLuhnGate(t *testing.T) {
	p := newPipeline(t)

	rec := processOneText(t, p, "Karte 4929 1234 5678 9015 bitte belasten.")
	require.Len(t, rec.Detections, 1)
	assert.Equal(t, models.CategoryCreditCard, rec.Detections[0].Category)

	rec = processOneText(t, p, "Die Nummer 1234 5678 1234 5671 ist keine Karte.")
	for _, d := range rec.Detections {
		assert.NotEqual(t, models.CategoryCreditCard, d.Category)
	}
}

func TestProcessMixedSentence(t *testing.T) {
	in := "Frau Müller wohnt in der Hauptstraße 15, 20095 Hamburg und hat die IBAN DE43 2127 2486 1917 6073 77."
	rec := processOneText(t, newPipeline(t), in)

	cats := make([]models.Category, 0, len(rec.Detections))
	for _, d := range rec.Detections {
		cats = append(cats, d.Category)
	}
	assert.Equal(t, []models.Category{
		models.CategoryPerson, models.CategoryAddress, models.CategoryIBAN,
	}, cats)

	// The address span covers the city, so no separate LOCATION remains.
	assert.Equal(t, "Hauptstraße 15, 20095 Hamburg", rec.Detections[1].Text)
	assert.Equal(t,
		"Frau [PERSON] wohnt in der [ADRESSE] und hat die IBAN [IBAN].",
		rec.AnonymizedText)
}

func TestProcessDetectionsSortedAndDisjoint(t *testing.T) {
	in := "Olaf Scholz, geboren am 12.04.1985, erreichbar unter 040-12345678 und olaf@beispiel.de in Berlin."
	rec := processOneText(t, newPipeline(t), in)
	require.NotEmpty(t, rec.Detections)

	for i := 1; i < len(rec.Detections); i++ {
		prev, cur := rec.Detections[i-1], rec.Detections[i]
		assert.LessOrEqual(t, prev.End, cur.Start, "spans must be disjoint and ordered")
	}
	for _, d := range rec.Detections {
		assert.Equal(t, d.Text, string([]rune(in)[d.Start:d.End]))
	}
}

func TestProcessEmptyInput(t *testing.T) {
	rec := processOneText(t, newPipeline(t), "")
	assert.False(t, rec.HasPII)
	assert.NotNil(t, rec.Detections)
	assert.Empty(t, rec.Detections)
	assert.Equal(t, "", rec.AnonymizedText)
}

func TestProcessCleanInput(t *testing.T) {
	rec := processOneText(t, newPipeline(t), "Das Wetter wird morgen deutlich besser.")
	assert.False(t, rec.HasPII)
	assert.Empty(t, rec.Detections)
	assert.Equal(t, "Das Wetter wird morgen deutlich besser.", rec.AnonymizedText)
}

func TestProcessMedicalContextNotFlagged(t *testing.T) {
	// Medication and procedure mentions without an identifiable person
	// must pass through untouched.
	p := newPipeline(t)
	for _, in := range []string{
		"Der Patient nimmt Aspirin wegen starker Migräne.",
		"Morgen habe ich einen Termin für ein MRT und eine Blutabnahme.",
	} {
		rec := processOneText(t, p, in)
		assert.False(t, rec.HasPII, "input: %s", in)
		assert.Empty(t, rec.Detections, "input: %s", in)
		assert.Equal(t, in, rec.AnonymizedText, "input: %s", in)
	}
}

func TestProcessBatchPreservesOrderAndLength(t *testing.T) {
	texts := []string{
		"Frau Müller hat angerufen.",
		"",
		"Kein Inhalt von Belang.",
		"Mail an ojaswini@gmail.com senden.",
	}
	results, err := newPipeline(t).ProcessBatch(texts)
	require.NoError(t, err)
	require.Len(t, results, len(texts))

	assert.True(t, results[0].HasPII)
	assert.False(t, results[1].HasPII)
	assert.False(t, results[2].HasPII)
	assert.True(t, results[3].HasPII)
	assert.Equal(t, "Mail an [EMAIL] senden.", results[3].AnonymizedText)
}

func TestProcessBatchParallelMatchesSerial(t *testing.T) {
	texts := []string{
		"Olaf Scholz wohnt in Berlin.",
		"IBAN DE43 2127 2486 1917 6073 77 angeben.",
		"Nichts zu melden.",
		"Karte 4929 1234 5678 9015 sperren!",
		"Frau Müller, Hauptstraße 15, 20095 Hamburg.",
		"Steuer-ID: 12345678901.",
	}

	serialCfg := config.DefaultConfig()
	serialCfg.Workers = 1
	serial, err := New(serialCfg, ner.NewRuleRecognizer(), nil)
	require.NoError(t, err)

	parallelCfg := config.DefaultConfig()
	parallelCfg.Workers = 4
	parallel, err := New(parallelCfg, ner.NewRuleRecognizer(), nil)
	require.NoError(t, err)

	a, err := serial.ProcessBatch(texts)
	require.NoError(t, err)
	b, err := parallel.ProcessBatch(texts)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestProcessBatchItemIsolation(t *testing.T) {
	// An item's result does not depend on its batch neighbors.
	p := newPipeline(t)
	a := "Frau Müller, IBAN DE43 2127 2486 1917 6073 77."
	b := "Olaf Scholz wohnt in Berlin und mailt an olaf@beispiel.de."

	together, err := p.ProcessBatch([]string{a, b})
	require.NoError(t, err)
	alone, err := p.ProcessBatch([]string{a})
	require.NoError(t, err)

	assert.Equal(t, alone[0], together[0])
}

func TestProcessDeterministic(t *testing.T) {
	p := newPipeline(t)
	in := "Dr. Weber erreicht man unter 040-12345678 oder dr.weber@praxis.de."
	a := processOneText(t, p, in)
	b := processOneText(t, p, in)
	assert.Equal(t, a, b)
}

func TestProcessAnonymizedOutputIsStable(t *testing.T) {
	// Re-running the pipeline over its own output finds nothing new.
	p := newPipeline(t)
	in := "Olaf Scholz, IBAN DE43 2127 2486 1917 6073 77, olaf@beispiel.de."
	first := processOneText(t, p, in)
	require.True(t, first.HasPII)

	second := processOneText(t, p, first.AnonymizedText)
	assert.False(t, second.HasPII)
	assert.Equal(t, first.AnonymizedText, second.AnonymizedText)
}

type failingRecognizer struct{}

func (failingRecognizer) Recognize(*models.TextUnit) ([]models.Candidate, error) {
	return nil, errors.New("backend down")
}

func TestProcessRecognizerErrorDegradesItem(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Workers = 1
	p, err := New(cfg, failingRecognizer{}, nil)
	require.NoError(t, err)

	rec := processOneText(t, p, "Frau Müller und ojaswini@gmail.com")
	// The item is reported untouched instead of half-processed.
	assert.False(t, rec.HasPII)
	assert.Empty(t, rec.Detections)
	assert.Equal(t, "Frau Müller und ojaswini@gmail.com", rec.AnonymizedText)
}

type panickingRecognizer struct{}

func (panickingRecognizer) Recognize(*models.TextUnit) ([]models.Candidate, error) {
	panic("model state corrupted")
}

func TestProcessPanicContainedPerItem(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Workers = 1
	p, err := New(cfg, panickingRecognizer{}, nil)
	require.NoError(t, err)

	results, err := p.ProcessBatch([]string{"Frau Müller", "auch hier"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Frau Müller", results[0].AnonymizedText)
	assert.Equal(t, "auch hier", results[1].AnonymizedText)
}

func TestNewRequiresRecognizer(t *testing.T) {
	_, err := New(config.DefaultConfig(), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestNilPipelineUnavailable(t *testing.T) {
	var p *Pipeline
	_, err := p.ProcessBatch([]string{"x"})
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}
