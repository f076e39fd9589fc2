package config

const (
	// MaxBodyLength is the maximum length of a submitted body text, in
	// characters. Generous: generated articles run a few thousand words,
	// and the HTTP layer already caps the raw payload size.
	MaxBodyLength = 1_000_000

	// MaxChangesPerEdit caps the change list on one save. Auto-save
	// batches a few seconds of typing, so hundreds of entries already
	// indicate a misbehaving client.
	MaxChangesPerEdit = 500

	// MaxSessionIDLength keeps client-chosen session identifiers within
	// the VARCHAR(255) column that stores them.
	MaxSessionIDLength = 255
)
