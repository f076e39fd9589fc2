package models

// Topic is an entry in the editorial topic taxonomy. Topics are loaded
// from the embedded taxonomy file at startup and attached to documents
// by slug; the editing core only reads them.
type Topic struct {
	Slug     string `json:"slug" yaml:"slug"`
	Title    string `json:"title" yaml:"title"`
	Category string `json:"category" yaml:"category"`
}
