package config

const (
	// DraftHistoryWindow is the number of trailing conversation turns passed
	// to the drafter for context. A contract with the frontend, not a tuning
	// knob.
	DraftHistoryWindow = 6

	// ReviewHistoryWindow is the number of trailing turns scanned for
	// reviewer keyword matching, and the window handed to the corrector.
	ReviewHistoryWindow = 4

	// Worker slot bounds for concurrent generation calls. The upstream API
	// tolerates 3-5 concurrent requests per key; configured values outside
	// that range are clamped, and intra-stage fan-out beyond the slot count
	// serializes.
	DefaultWorkerSlots = 3
	MinWorkerSlots     = 3
	MaxWorkerSlots     = 5

	// MaxDocumentNameLength is the maximum length for document filenames.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255).
	MaxDocumentNameLength = 255

	// MaxMessageLength caps a single chat message. Long pastes are fine;
	// whole documents should go through the document upload endpoint.
	MaxMessageLength = 8000

	// RetrievalResultLimit is how many document chunks are spliced into the
	// drafter's reference block.
	RetrievalResultLimit = 3
)
