package query

import (
	"strconv"

	"github.com/outofforest/mass"
	"github.com/pkg/errors"
)

// ParserConfig stores parser configuration.
type ParserConfig struct {
	// Registry resolves type codes to definitions.
	Registry *Registry

	// MassInstance slab-allocates the parsed instances.
	MassInstance *mass.Mass[Instance]
}

// NewParser creates new query parser.
func NewParser(config ParserConfig) *Parser {
	return &Parser{
		config: config,
		tokens: make([]string, 0, 8),
	}
}

// Parser turns one line of text into a query instance. The token scratch is
// shared across lines, so parsing allocates O(1) amortised.
type Parser struct {
	config ParserConfig
	tokens []string
}

// Parse parses one line. line is the 1-based source line number used for
// output interleaving.
func (p *Parser) Parse(text string, line uint32) (*Instance, error) {
	tokens, err := p.tokenize(text)
	if err != nil || len(tokens) == 0 {
		return nil, errors.Errorf("failed to parse query at line %d: %q", line, text)
	}

	code, formatted, ok := parseTypeToken(tokens[0])
	if !ok {
		return nil, errors.Errorf("failed to parse query at line %d: %q", line, text)
	}
	def := p.config.Registry.Get(code)
	if def == nil {
		return nil, errors.Errorf("failed to parse query at line %d: %q", line, text)
	}

	args, err := def.ParseArguments(tokens[1:])
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse query at line %d: %q", line, text)
	}

	instance := p.config.MassInstance.New()
	instance.def = def
	instance.Formatted = formatted
	instance.Line = line
	instance.Args = args
	return instance, nil
}

// tokenize splits the line into whitespace-separated tokens. A double-quoted
// run preserves whitespace; a token may not straddle a quote boundary.
func (p *Parser) tokenize(text string) ([]string, error) {
	tokens := p.tokens[:0]
	i := 0
	for i < len(text) {
		switch text[i] {
		case ' ', '\t', '\r':
			i++
		case '"':
			end := i + 1
			for end < len(text) && text[end] != '"' {
				end++
			}
			if end == len(text) {
				return nil, errors.New("unterminated quote")
			}
			if end+1 < len(text) && !isSpace(text[end+1]) {
				return nil, errors.New("token straddles a quote boundary")
			}
			tokens = append(tokens, text[i+1:end])
			i = end + 1
		default:
			end := i
			for end < len(text) && !isSpace(text[end]) && text[end] != '"' {
				end++
			}
			if end < len(text) && text[end] == '"' {
				return nil, errors.New("token straddles a quote boundary")
			}
			tokens = append(tokens, text[i:end])
			i = end
		}
	}
	p.tokens = tokens
	return tokens, nil
}

// parseTypeToken decodes the leading type token: decimal digits optionally
// suffixed by F to select formatted output.
func parseTypeToken(token string) (code int, formatted bool, ok bool) {
	if len(token) > 0 && token[len(token)-1] == 'F' {
		formatted = true
		token = token[:len(token)-1]
	}
	if len(token) == 0 {
		return 0, false, false
	}
	for i := range len(token) {
		if token[i] < '0' || token[i] > '9' {
			return 0, false, false
		}
	}
	code, err := strconv.Atoi(token)
	if err != nil || code <= 0 {
		return 0, false, false
	}
	return code, formatted, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}
