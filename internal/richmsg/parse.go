package richmsg

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"gopkg.in/yaml.v3"
)

// Accepted spellings per schema field. The first entry is the canonical name.
var (
	messageSchema = schema{
		{"content", "c"},
		{"embed", "e"},
	}
	embedSchema = schema{
		{"colour", "color", "c"},
		{"description", "d"},
		{"fields", "field", "f"},
		{"footer"},
		{"author", "a"},
	}
	rgbSchema = schema{
		{"red", "r"},
		{"green", "g"},
		{"blue", "b"},
	}
	fieldSchema = schema{
		{"name"},
		{"value"},
		{"inline"},
	}
	footerSchema = schema{
		{"text"},
		{"url"},
	}
	authorSchema = schema{
		{"name", "n"},
		{"link", "url", "u", "l"},
		{"icon", "i"},
	}
)

type schema [][]string

func (s schema) canonical(key string) (string, bool) {
	for _, spellings := range s {
		for _, sp := range spellings {
			if sp == key {
				return spellings[0], true
			}
		}
	}
	return "", false
}

// Parse reads the compact textual form of a message. The text is YAML flow
// syntax, which accepts plain JSON as well as unquoted keys, single quotes and
// trailing commas. A surrounding Markdown code fence is ignored, anything else
// after the message object is an error.
//
// Untagged unions are resolved in a fixed order:
//
//	colour: integer scalar, then string scalar (name or #hex), then {r,g,b} object
//	fields: single object, then list of objects
//	footer: string scalar, then {text,url} object
func Parse(text string) (*Message, error) {
	dec := yaml.NewDecoder(strings.NewReader(normalizeEscapes(stripCodeFence(text))))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty input")
		}
		return nil, syntaxError(err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, syntaxError(errors.New("empty input"))
	}
	var trailing yaml.Node
	if err := dec.Decode(&trailing); !errors.Is(err, io.EOF) {
		if err == nil {
			err = fmt.Errorf("line %d: unexpected input after the message", trailing.Line)
		}
		return nil, syntaxError(err)
	}

	msg, err := parseMessage(doc.Content[0])
	if err != nil {
		return nil, syntaxError(err)
	}
	return msg, nil
}

// normalizeEscapes rewrites the JSON string escapes YAML does not know inside
// double-quoted strings: "\/" and UTF-16 surrogate pairs such as
// "\ud83d\ude00", which become the equivalent "\U0001F600".
func normalizeEscapes(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}
	var sb strings.Builder
	sb.Grow(len(text))
	var quote byte
	var last byte = '{'
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote == '\'':
			if c == '\'' {
				if i+1 < len(text) && text[i+1] == '\'' {
					sb.WriteString("''")
					i++
					continue
				}
				quote = 0
			}
		case quote == '"':
			if c == '"' {
				quote = 0
			} else if c == '\\' && i+1 < len(text) {
				if text[i+1] == '/' {
					sb.WriteByte('/')
					i++
					continue
				}
				if r, ok := surrogatePair(text[i:]); ok {
					fmt.Fprintf(&sb, `\U%08X`, r)
					i += 11
					continue
				}
				sb.WriteString(text[i : i+2])
				i++
				continue
			}
		case (c == '"' || c == '\'') && strings.IndexByte("{[,:", last) >= 0:
			quote = c
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' {
			last = c
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// surrogatePair decodes a leading "\uXXXX\uXXXX" high/low surrogate pair.
func surrogatePair(s string) (rune, bool) {
	if len(s) < 12 || s[:2] != `\u` || s[6:8] != `\u` {
		return 0, false
	}
	hi, err1 := strconv.ParseUint(s[2:6], 16, 16)
	lo, err2 := strconv.ParseUint(s[8:12], 16, 16)
	if err1 != nil || err2 != nil || !utf16.IsSurrogate(rune(hi)) {
		return 0, false
	}
	r := utf16.DecodeRune(rune(hi), rune(lo))
	return r, r != unicode.ReplacementChar
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") || !strings.HasSuffix(text, "```") || len(text) < 6 {
		return text
	}
	body := text[3 : len(text)-3]
	// An info string such as "json" or "json5" occupies the rest of the opening line.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "{[") {
		body = body[nl+1:]
	}
	return strings.TrimSpace(body)
}

func parseMessage(n *yaml.Node) (*Message, error) {
	fields, err := readObject(n, "message", messageSchema)
	if err != nil {
		return nil, err
	}
	msg := &Message{}
	if v, ok := fields["content"]; ok {
		if msg.Content, err = readString(v, "content"); err != nil {
			return nil, err
		}
	}
	if v, ok := fields["embed"]; ok {
		if msg.Embed, err = parseEmbed(v); err != nil {
			return nil, err
		}
	}
	return msg, nil
}

func parseEmbed(n *yaml.Node) (*Embed, error) {
	fields, err := readObject(n, "embed", embedSchema)
	if err != nil {
		return nil, err
	}
	e := &Embed{}
	if v, ok := fields["colour"]; ok {
		if e.Colour, err = parseColour(v); err != nil {
			return nil, err
		}
	}
	if v, ok := fields["description"]; ok {
		if e.Description, err = readString(v, "description"); err != nil {
			return nil, err
		}
	}
	if v, ok := fields["fields"]; ok {
		if e.Fields, err = parseFields(v); err != nil {
			return nil, err
		}
	}
	if v, ok := fields["footer"]; ok {
		if e.Footer, err = parseFooter(v); err != nil {
			return nil, err
		}
	}
	if v, ok := fields["author"]; ok {
		if e.Author, err = parseAuthor(v); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func parseColour(n *yaml.Node) (*ColourSpec, error) {
	if n.Kind == yaml.ScalarNode {
		switch n.ShortTag() {
		case "!!int":
			var v uint32
			if err := n.Decode(&v); err != nil {
				return nil, fmt.Errorf("line %d: colour: %w", n.Line, err)
			}
			spec := IntegerColour(v)
			return &spec, nil
		case "!!str":
			spec := NamedColour(n.Value)
			return &spec, nil
		}
	}
	if n.Kind == yaml.MappingNode {
		fields, err := readObject(n, "colour", rgbSchema)
		if err != nil {
			return nil, err
		}
		var rgb [3]uint8
		for i, name := range []string{"red", "green", "blue"} {
			v, ok := fields[name]
			if !ok {
				return nil, fmt.Errorf("line %d: colour: missing field %q", n.Line, name)
			}
			if v.ShortTag() != "!!int" {
				return nil, fmt.Errorf("line %d: colour: %s must be an integer", v.Line, name)
			}
			if err := v.Decode(&rgb[i]); err != nil {
				return nil, fmt.Errorf("line %d: colour: %s: %w", v.Line, name, err)
			}
		}
		spec := RGBColour(rgb[0], rgb[1], rgb[2])
		return &spec, nil
	}
	return nil, fmt.Errorf("line %d: colour: data did not match integer, string or {red, green, blue}", n.Line)
}

func parseFields(n *yaml.Node) (*FieldSpec, error) {
	switch n.Kind {
	case yaml.MappingNode:
		f, err := parseField(n)
		if err != nil {
			return nil, err
		}
		return &FieldSpec{Single: f}, nil
	case yaml.SequenceNode:
		many := make([]Field, 0, len(n.Content))
		for _, item := range n.Content {
			f, err := parseField(resolveAlias(item))
			if err != nil {
				return nil, err
			}
			many = append(many, *f)
		}
		return &FieldSpec{Many: many}, nil
	}
	return nil, fmt.Errorf("line %d: fields: data did not match a field or a list of fields", n.Line)
}

func parseField(n *yaml.Node) (*Field, error) {
	fields, err := readObject(n, "field", fieldSchema)
	if err != nil {
		return nil, err
	}
	name, err := requireString(n, fields, "field", "name")
	if err != nil {
		return nil, err
	}
	value, err := requireString(n, fields, "field", "value")
	if err != nil {
		return nil, err
	}
	f := &Field{Name: name, Value: value}
	if v, ok := fields["inline"]; ok {
		if v.ShortTag() != "!!bool" {
			return nil, fmt.Errorf("line %d: field: inline must be true or false", v.Line)
		}
		if err := v.Decode(&f.Inline); err != nil {
			return nil, fmt.Errorf("line %d: field: inline: %w", v.Line, err)
		}
	}
	return f, nil
}

func parseFooter(n *yaml.Node) (*FooterSpec, error) {
	if n.Kind == yaml.ScalarNode && n.ShortTag() == "!!str" {
		text := n.Value
		return &FooterSpec{TextOnly: &text}, nil
	}
	if n.Kind == yaml.MappingNode {
		fields, err := readObject(n, "footer", footerSchema)
		if err != nil {
			return nil, err
		}
		footer := &Footer{}
		if v, ok := fields["text"]; ok {
			if footer.Text, err = readString(v, "footer text"); err != nil {
				return nil, err
			}
		}
		if v, ok := fields["url"]; ok {
			if footer.URL, err = readString(v, "footer url"); err != nil {
				return nil, err
			}
		}
		return &FooterSpec{Complex: footer}, nil
	}
	return nil, fmt.Errorf("line %d: footer: data did not match text or {text, url}", n.Line)
}

func parseAuthor(n *yaml.Node) (*Author, error) {
	fields, err := readObject(n, "author", authorSchema)
	if err != nil {
		return nil, err
	}
	name, err := requireString(n, fields, "author", "name")
	if err != nil {
		return nil, err
	}
	a := &Author{Name: name}
	if v, ok := fields["link"]; ok {
		if a.Link, err = readString(v, "author link"); err != nil {
			return nil, err
		}
	}
	if v, ok := fields["icon"]; ok {
		if a.Icon, err = readString(v, "author icon"); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// readObject collects the recognised keys of a mapping under their canonical
// names. Unknown keys are ignored and explicit nulls count as absent; giving
// the same field twice under different spellings is an error.
func readObject(n *yaml.Node, what string, s schema) (map[string]*yaml.Node, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %s: expected an object", n.Line, what)
	}
	out := make(map[string]*yaml.Node)
	seen := make(map[string]string)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i], resolveAlias(n.Content[i+1])
		name, ok := s.canonical(key.Value)
		if !ok {
			continue
		}
		if prev, dup := seen[name]; dup {
			return nil, fmt.Errorf("line %d: %s: duplicate field %q (already given as %q)", key.Line, what, key.Value, prev)
		}
		seen[name] = key.Value
		if value.ShortTag() == "!!null" {
			continue
		}
		out[name] = value
	}
	return out, nil
}

func readString(n *yaml.Node, what string) (*string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return nil, fmt.Errorf("line %d: %s: expected a string", n.Line, what)
	}
	s := n.Value
	return &s, nil
}

func requireString(parent *yaml.Node, fields map[string]*yaml.Node, what, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", fmt.Errorf("line %d: %s: missing field %q", parent.Line, what, name)
	}
	s, err := readString(v, what+" "+name)
	if err != nil {
		return "", err
	}
	return *s, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
