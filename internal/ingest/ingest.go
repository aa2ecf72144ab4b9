package ingest

import "fmt"

// RawRecord is one unnormalized input row. It is never persisted.
type RawRecord struct {
	ISBN            string `json:"isbn"`
	Title           string `json:"title"`
	PublicationYear int    `json:"publication_year"`
	AuthorName      string `json:"author_name"`
}

// Failure describes one record that could not be ingested. Row is the
// zero-based position of the record in the batch.
type Failure struct {
	Row    int    `json:"row"`
	ISBN   string `json:"isbn"`
	Reason string `json:"reason"`
}

func (f Failure) String() string {
	return fmt.Sprintf("ISBN %s: %s", f.ISBN, f.Reason)
}

// Outcome aggregates one ingest call. Errors holds one formatted entry per
// failed record, in input order.
type Outcome struct {
	Total      int       `json:"total_records"`
	Successful int       `json:"successful"`
	Failed     int       `json:"failed"`
	Errors     []string  `json:"errors"`
	Failures   []Failure `json:"failures"`
}

func (o *Outcome) succeed() {
	o.Successful++
}

func (o *Outcome) fail(row int, rec RawRecord, err error) {
	f := Failure{Row: row, ISBN: rec.ISBN, Reason: err.Error()}
	o.Failed++
	o.Failures = append(o.Failures, f)
	o.Errors = append(o.Errors, f.String())
}
