package anonymizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digimosa/pii-redact/internal/models"
)

func TestApplyReplacesSpansAndKeepsRest(t *testing.T) {
	text := "Erreichen Sie mich unter ojaswini@gmail.com für Termine."
	u := models.NewTextUnit(text)
	start := len([]rune("Erreichen Sie mich unter "))
	resolved := []models.Candidate{
		{Category: models.CategoryEmail, Start: start, End: start + 18, Source: models.SourcePattern, Confidence: 0.95},
	}

	dets, anon := New(false).Apply(u, resolved)
	require.Len(t, dets, 1)
	assert.Equal(t, "Erreichen Sie mich unter [EMAIL] für Termine.", anon)
	assert.Equal(t, "ojaswini@gmail.com", dets[0].Text)
	assert.Equal(t, "[EMAIL]", dets[0].Token)
	assert.Equal(t, start, dets[0].Start)
}

func TestApplyUmlautOffsets(t *testing.T) {
	text := "Frau Müller wohnt in Köln."
	u := models.NewTextUnit(text)
	resolved := []models.Candidate{
		{Category: models.CategoryPerson, Start: 5, End: 11, Source: models.SourceModel, Confidence: 0.9},
		{Category: models.CategoryLocation, Start: 21, End: 25, Source: models.SourceModel, Confidence: 0.8},
	}

	dets, anon := New(false).Apply(u, resolved)
	require.Len(t, dets, 2)
	assert.Equal(t, "Müller", dets[0].Text)
	assert.Equal(t, "Köln", dets[1].Text)
	assert.Equal(t, "Frau [PERSON] wohnt in [ORT].", anon)
}

func TestApplyEmptyResolvedReturnsInputVerbatim(t *testing.T) {
	u := models.NewTextUnit("Nichts zu sehen hier.")
	dets, anon := New(false).Apply(u, nil)
	assert.NotNil(t, dets)
	assert.Empty(t, dets)
	assert.Equal(t, "Nichts zu sehen hier.", anon)
}

func TestApplyConsistentPseudonymization(t *testing.T) {
	text := "Anna traf Lena. Anna winkte."
	u := models.NewTextUnit(text)
	resolved := []models.Candidate{
		{Category: models.CategoryPerson, Start: 0, End: 4, Source: models.SourceModel, Confidence: 0.9},
		{Category: models.CategoryPerson, Start: 10, End: 14, Source: models.SourceModel, Confidence: 0.9},
		{Category: models.CategoryPerson, Start: 16, End: 20, Source: models.SourceModel, Confidence: 0.9},
	}

	dets, anon := New(true).Apply(u, resolved)
	require.Len(t, dets, 3)
	assert.Equal(t, "[PERSON_1]", dets[0].Token)
	assert.Equal(t, "[PERSON_2]", dets[1].Token)
	// Same literal text, same category: the first token is reused.
	assert.Equal(t, "[PERSON_1]", dets[2].Token)
	assert.Equal(t, "[PERSON_1] traf [PERSON_2]. [PERSON_1] winkte.", anon)
}

func TestApplyCountersResetPerCall(t *testing.T) {
	u := models.NewTextUnit("Anna lacht.")
	resolved := []models.Candidate{
		{Category: models.CategoryPerson, Start: 0, End: 4, Source: models.SourceModel, Confidence: 0.9},
	}

	a := New(true)
	first, _ := a.Apply(u, resolved)
	second, _ := a.Apply(u, resolved)
	assert.Equal(t, "[PERSON_1]", first[0].Token)
	assert.Equal(t, "[PERSON_1]", second[0].Token)
}

func TestTokenFallback(t *testing.T) {
	assert.Equal(t, "[IBAN]", Token(models.CategoryIBAN))
	assert.Equal(t, "[PII]", Token(models.Category("UNBEKANNT")))
}

func TestTokensContainNoDetectableShapes(t *testing.T) {
	for _, tok := range []models.Category{
		models.CategoryEmail, models.CategoryIBAN, models.CategoryPhone,
	} {
		assert.False(t, strings.ContainsAny(Token(tok), "@0123456789"))
	}
}
