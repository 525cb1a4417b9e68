package notion

import "strings"

// BlockKind is the closed set of block variants the publisher emits.
type BlockKind string

const (
	Heading    BlockKind = "heading_2"
	SubHeading BlockKind = "heading_3"
	Paragraph  BlockKind = "paragraph"
	Bullet     BlockKind = "bulleted_list_item"
	Audio      BlockKind = "audio"
	Divider    BlockKind = "divider"
)

// Block is one workspace block. Text is used by text kinds, URL by Audio.
type Block struct {
	Kind BlockKind
	Text string
	URL  string
}

// FromMarkdown maps the brief's markdown-ish text onto blocks:
// "## " lines become headings, "- " lines bullets, blank lines are skipped
// and everything else is a paragraph.
func FromMarkdown(md string) []Block {
	var blocks []Block
	for _, line := range strings.Split(md, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			blocks = append(blocks, Block{Kind: Heading, Text: strings.TrimSpace(line[3:])})
		case strings.HasPrefix(line, "- "):
			blocks = append(blocks, Block{Kind: Bullet, Text: strings.TrimSpace(line[2:])})
		case strings.TrimSpace(line) == "":
			continue
		default:
			blocks = append(blocks, Block{Kind: Paragraph, Text: line})
		}
	}
	return blocks
}

// AudioSection is a labeled audio attachment: a subheading followed by the
// external audio block.
func AudioSection(label, url string) []Block {
	return []Block{
		{Kind: SubHeading, Text: label},
		{Kind: Audio, URL: url},
	}
}

type richText struct {
	Type string `json:"type"`
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
}

func rt(content string) []richText {
	var r richText
	r.Type = "text"
	r.Text.Content = content
	return []richText{r}
}

type textPayload struct {
	RichText []richText `json:"rich_text"`
}

type externalFile struct {
	Type     string `json:"type"`
	External struct {
		URL string `json:"url"`
	} `json:"external"`
}

// toAPI renders a Block as the wire object the workspace API expects.
func (b Block) toAPI() map[string]any {
	obj := map[string]any{"type": string(b.Kind)}
	switch b.Kind {
	case Audio:
		var f externalFile
		f.Type = "external"
		f.External.URL = b.URL
		obj[string(b.Kind)] = f
	case Divider:
		obj[string(b.Kind)] = struct{}{}
	default:
		obj[string(b.Kind)] = textPayload{RichText: rt(b.Text)}
	}
	return obj
}
