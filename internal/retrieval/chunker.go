package retrieval

import "strings"

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// ChunkText splits text into overlapping chunks for retrieval. Splitting is
// paragraph-aware: paragraphs are packed into chunks up to the size limit,
// over-long paragraphs are broken at sentence boundaries, and each chunk
// after the first is prefixed with the tail of its predecessor for context
// continuity.
func ChunkText(text string) []string {
	return chunk(text, chunkSize, chunkOverlap)
}

func chunk(text string, size, overlap int) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var paragraphs []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}

	var chunks []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, para := range paragraphs {
		if len(para) > size {
			// Break an over-long paragraph at sentence boundaries.
			sentences := strings.Split(strings.ReplaceAll(para, ". ", ".\n"), "\n")
			for _, sentence := range sentences {
				if current.Len()+len(sentence) >= size {
					flush()
				}
				current.WriteString(sentence)
				current.WriteString(" ")
			}
			continue
		}
		if current.Len()+len(para) >= size {
			flush()
		}
		current.WriteString(para)
		current.WriteString("\n\n")
	}
	flush()

	if overlap <= 0 || len(chunks) <= 1 {
		return chunks
	}

	// Prefix each chunk with the tail of the previous one.
	overlapped := make([]string, len(chunks))
	overlapped[0] = chunks[0]
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1]
		if len(prev) > overlap {
			prev = prev[len(prev)-overlap:]
		}
		overlapped[i] = prev + " ... " + chunks[i]
	}
	return overlapped
}
