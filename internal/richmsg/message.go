// Package richmsg implements the compact rich-message grammar: parsing the
// textual form into a Message tree, resolving colours, and materializing the
// tree into a discordgo send payload.
package richmsg

// Message is the root of the grammar. Nil fields were not given.
type Message struct {
	Content *string
	Embed   *Embed
}

type Embed struct {
	Colour      *ColourSpec
	Description *string
	Fields      *FieldSpec
	Footer      *FooterSpec
	Author      *Author
}

// FieldSpec holds either a single field object or a list of them, as written.
type FieldSpec struct {
	Single *Field
	Many   []Field
}

// Normalize returns the fields in input order.
func (f *FieldSpec) Normalize() []Field {
	if f == nil {
		return nil
	}
	if f.Single != nil {
		return []Field{*f.Single}
	}
	return f.Many
}

type Field struct {
	Name   string
	Value  string
	Inline bool
}

// FooterSpec holds either a bare footer text or a {text, url} object.
type FooterSpec struct {
	TextOnly *string
	Complex  *Footer
}

// Normalize folds the bare text form into a Footer.
func (f *FooterSpec) Normalize() Footer {
	if f.TextOnly != nil {
		return Footer{Text: f.TextOnly}
	}
	if f.Complex != nil {
		return *f.Complex
	}
	return Footer{}
}

type Footer struct {
	Text *string
	URL  *string
}

type Author struct {
	Name string
	Link *string
	Icon *string
}

// EnsureEmbed returns m.Embed, allocating it first when absent.
func (m *Message) EnsureEmbed() *Embed {
	if m.Embed == nil {
		m.Embed = &Embed{}
	}
	return m.Embed
}

// StringPtr is a convenience for building messages by hand.
func StringPtr(s string) *string { return &s }
