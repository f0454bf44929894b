package armor

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	jerrors "github.com/kimor79/jass/internal/errors"
)

// PayloadName is the block name that carries the encrypted payload.
// Every other block in an envelope is named by a key fingerprint.
const PayloadName = "message"

const (
	beginPrefix = "begin-base64"
	endMarker   = "===="
	defaultMode = "600"
	lineLength  = 60
)

// Block is one named section of a container: arbitrary bytes plus the
// name they travel under.
type Block struct {
	Name string
	Data []byte
}

// Encode renders blocks as a uuencode-style base64 container. Each block
// becomes a begin-base64 marker line with mode and name, base64 body
// wrapped at 60 columns, and a ==== terminator. The output is plain
// ASCII, safe for mail, chat, and copy-paste.
func Encode(blocks []Block) []byte {
	var buf bytes.Buffer
	for _, block := range blocks {
		fmt.Fprintf(&buf, "%s %s %s\n", beginPrefix, defaultMode, block.Name)

		encoded := base64.StdEncoding.EncodeToString(block.Data)
		for len(encoded) > lineLength {
			buf.WriteString(encoded[:lineLength])
			buf.WriteByte('\n')
			encoded = encoded[lineLength:]
		}
		if len(encoded) > 0 {
			buf.WriteString(encoded)
			buf.WriteByte('\n')
		}

		buf.WriteString(endMarker + "\n")
	}
	return buf.Bytes()
}

// Decode extracts all blocks from container text, in order of appearance.
// Text outside blocks is ignored, so a container survives being quoted in
// an email or pasted with surrounding noise. CRLF line endings are
// tolerated. A container without a single begin marker, an unterminated
// block, or a body that does not decode as base64 yields ErrTransportParse.
func Decode(data []byte) ([]Block, error) {
	lines := strings.Split(string(data), "\n")
	var blocks []Block

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], "\r")
		if !strings.HasPrefix(line, beginPrefix+" ") {
			continue
		}

		name, err := parseBeginMarker(line)
		if err != nil {
			return nil, err
		}

		var body strings.Builder
		terminated := false
		for i++; i < len(lines); i++ {
			bodyLine := strings.TrimRight(lines[i], "\r")
			if bodyLine == endMarker {
				terminated = true
				break
			}
			if bodyLine == "" {
				continue
			}
			body.WriteString(bodyLine)
		}
		if !terminated {
			return nil, fmt.Errorf("%w: block %q is missing its %s terminator", jerrors.ErrTransportParse, name, endMarker)
		}

		decoded, err := base64.StdEncoding.DecodeString(body.String())
		if err != nil {
			return nil, fmt.Errorf("%w: block %q: %v", jerrors.ErrTransportParse, name, err)
		}

		blocks = append(blocks, Block{Name: name, Data: decoded})
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("%w: no %s marker found", jerrors.ErrTransportParse, beginPrefix)
	}
	return blocks, nil
}

// parseBeginMarker extracts the block name from a begin-base64 line.
// The format is "begin-base64 <mode> <name>"; the name may contain spaces.
func parseBeginMarker(line string) (string, error) {
	rest := strings.TrimPrefix(line, beginPrefix+" ")
	fields := strings.SplitN(rest, " ", 2)
	if len(fields) < 2 || fields[1] == "" {
		return "", fmt.Errorf("%w: malformed begin marker %q", jerrors.ErrTransportParse, line)
	}
	return fields[1], nil
}
