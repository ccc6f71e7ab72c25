package interpreter

import (
	"fmt"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/ridoystarlord/primitivedb/engine"
	"github.com/ridoystarlord/primitivedb/schema"
)

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", schema.ErrMalformedCommand, fmt.Sprintf(format, args...))
}

// tokenize splits a line the way a POSIX shell would, honoring quotes and
// backslash escapes. A '#' is an ordinary character, not a comment.
func tokenize(line string) ([]string, error) {
	tokens, err := shellquote.Split(line)
	if err != nil {
		return nil, malformed("%v", err)
	}
	return tokens, nil
}

// parseCondition reads col=value from one or more tokens, so "age=28",
// "age = 28" and `name="Anna Lee"` all work.
func parseCondition(tokens []string) (*engine.Condition, error) {
	eq := -1
	for i, tok := range tokens {
		if strings.Contains(tok, "=") {
			eq = i
			break
		}
	}
	if eq < 0 {
		return nil, malformed("expected <column>=<value>, got %q", strings.Join(tokens, " "))
	}

	prefix, suffix, _ := strings.Cut(tokens[eq], "=")
	column := strings.Join(append(append([]string(nil), tokens[:eq]...), prefix), "")
	if column == "" || len(tokens[:eq]) > 1 || (eq == 1 && prefix != "") {
		return nil, malformed("expected <column>=<value>, got %q", strings.Join(tokens, " "))
	}

	var valueParts []string
	if suffix != "" || eq == len(tokens)-1 {
		valueParts = append(valueParts, suffix)
	}
	valueParts = append(valueParts, tokens[eq+1:]...)

	return &engine.Condition{Column: column, Value: strings.Join(valueParts, " ")}, nil
}

// splitValues splits the inside of a values (...) list on commas that are not
// inside quotes. Quoted items keep their inner whitespace; bare items are trimmed.
func splitValues(list string) ([]string, error) {
	if strings.TrimSpace(list) == "" {
		return []string{}, nil
	}

	var (
		values  []string
		current strings.Builder
		quote   rune
		quoted  bool
		escaped bool
	)

	flush := func() error {
		item := current.String()
		if !quoted {
			item = strings.TrimSpace(item)
			if item == "" {
				return malformed("empty value at position %d", len(values)+1)
			}
		}
		values = append(values, item)
		current.Reset()
		quoted = false
		return nil
	}

	for _, r := range list {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case quote != 0:
			switch {
			case r == '\\' && quote == '"':
				escaped = true
			case r == quote:
				quote = 0
			default:
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			if quoted || strings.TrimSpace(current.String()) != "" {
				return nil, malformed("unexpected %q inside value", r)
			}
			current.Reset()
			quote = r
			quoted = true
		case r == ',':
			if err := flush(); err != nil {
				return nil, err
			}
		case quoted && r != ' ' && r != '\t':
			return nil, malformed("unexpected %q after quoted value", r)
		case quoted:
			// whitespace between a closing quote and the next comma
		default:
			current.WriteRune(r)
		}
	}

	if quote != 0 || escaped {
		return nil, malformed("unterminated quote in values list")
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return values, nil
}
