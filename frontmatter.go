package mdpo

import "bytes"

// splitFrontMatter separates a leading metadata block (`---` YAML, `+++`
// TOML or `;;;` JSON delimiters) from the document body. Front matter is
// never translated; callers carry it through verbatim. When no well-formed
// block opens the document, front is empty and body is the whole input.
func splitFrontMatter(src []byte) (front, body []byte) {
	line, next, ok := frontMatterLine(src, 0)
	if !ok {
		return nil, src
	}
	delim, isFrontMatter := frontMatterDelimiter(line)
	if !isFrontMatter {
		return nil, src
	}
	second, secondNext, ok := frontMatterLine(src, next)
	if !ok || !metadataLikely(second) {
		return nil, src
	}
	for idx := secondNext; idx <= len(src); {
		line, next, ok := frontMatterLine(src, idx)
		if !ok {
			break
		}
		if bytes.Equal(bytes.TrimSpace(line), delim) {
			return src[:next], src[next:]
		}
		if next == idx {
			break
		}
		idx = next
	}
	return nil, src
}

func frontMatterLine(src []byte, start int) (line []byte, next int, ok bool) {
	if start >= len(src) {
		return nil, start, false
	}
	i := bytes.IndexByte(src[start:], '\n')
	if i < 0 {
		return trimCR(src[start:]), len(src), true
	}
	end := start + i
	return trimCR(src[start:end]), end + 1, true
}

func frontMatterDelimiter(line []byte) ([]byte, bool) {
	trimmed := bytes.TrimSpace(trimBOM(line))
	switch {
	case bytes.Equal(trimmed, []byte("---")):
		return []byte("---"), true
	case bytes.Equal(trimmed, []byte("+++")):
		return []byte("+++"), true
	case bytes.Equal(trimmed, []byte(";;;")):
		return []byte(";;;"), true
	default:
		return nil, false
	}
}

func metadataLikely(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return false
	}
	if bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("[")) {
		return true
	}
	return bytes.Contains(trimmed, []byte(":")) || bytes.Contains(trimmed, []byte("="))
}

func trimCR(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		return b[:len(b)-1]
	}
	return b
}

func trimBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}
