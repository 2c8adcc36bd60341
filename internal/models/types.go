package models

// Category classifies a detected piece of PII.
type Category string

const (
	CategoryDate           Category = "DATE"
	CategoryIBAN           Category = "IBAN"
	CategoryCreditCard     Category = "CREDIT_CARD"
	CategoryPhone          Category = "PHONE"
	CategoryEmail          Category = "EMAIL"
	CategoryURL            Category = "URL"
	CategoryAddress        Category = "ADDRESS"
	CategoryTaxID          Category = "TAX_ID"
	CategoryPassport       Category = "PASSPORT"
	CategoryDriversLicense Category = "DRIVERS_LICENSE"
	CategoryPerson         Category = "PERSON"
	CategoryOrganization   Category = "ORGANIZATION"
	CategoryLocation       Category = "LOCATION"
	CategoryProfession     Category = "PROFESSION"
)

// Source identifies which kind of detector produced a candidate.
type Source string

const (
	SourcePattern Source = "pattern"
	SourceModel   Source = "model"
)

// Metadata carries the category-specific attributes of a candidate.
// Fields are populated per category (country/region for phone and IBAN,
// scheme/validated for checksummed identifiers, label for model output)
// and serialized sparsely so the external JSON shape stays flexible.
type Metadata struct {
	Country    string `json:"country,omitempty"`
	Region     string `json:"region,omitempty"`
	NumberType string `json:"number_type,omitempty"`
	Scheme     string `json:"scheme,omitempty"`
	Validated  bool   `json:"validated,omitempty"`
	Label      string `json:"label,omitempty"`
}

// Candidate is one proposed PII span prior to conflict resolution.
// Offsets are half-open Unicode code-point positions into the TextUnit
// the candidate was produced from: 0 <= Start < End <= unit.Len().
type Candidate struct {
	Category   Category
	Start      int
	End        int
	Source     Source
	Confidence float64
	Metadata   *Metadata
}

// Validated reports whether the candidate passed a checksum gate.
func (c Candidate) Validated() bool {
	return c.Metadata != nil && c.Metadata.Validated
}

// Detection is a Candidate promoted into the final non-overlapping set.
type Detection struct {
	Category   Category  `json:"type"`
	Token      string    `json:"token"`
	Text       string    `json:"text"`
	Start      int       `json:"start"`
	End        int       `json:"end"`
	Confidence float64   `json:"confidence"`
	Metadata   *Metadata `json:"metadata,omitempty"`
}

// ResultRecord is the per-input outcome of one pipeline invocation.
type ResultRecord struct {
	HasPII         bool        `json:"has_pii"`
	Detections     []Detection `json:"detections"`
	AnonymizedText string      `json:"anonymized_text"`
}
