package telegram

import (
	"bytes"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// SplitMessage splits a message into chunks of maxLen characters,
// trying to split at newlines when possible.
func SplitMessage(text string, maxLen int) []string {
	if utf8.RuneCountInString(text) <= maxLen {
		return []string{text}
	}

	var parts []string
	for len(text) > 0 {
		if utf8.RuneCountInString(text) <= maxLen {
			parts = append(parts, text)
			break
		}

		runes := []rune(text)
		splitAt := maxLen

		// Prefer a paragraph break, then any line break.
		chunk := string(runes[:maxLen])
		if i := strings.LastIndex(chunk, "\n\n"); i > len(chunk)/2 {
			splitAt = utf8.RuneCountInString(chunk[:i+2])
		} else if i := strings.LastIndex(chunk, "\n"); i > len(chunk)/2 {
			splitAt = utf8.RuneCountInString(chunk[:i+1])
		}

		parts = append(parts, string(runes[:splitAt]))
		text = string(runes[splitAt:])
	}

	return parts
}

// FixMarkdown closes an unbalanced code fence or inline code span, which
// happens when a long reply is split.
func FixMarkdown(text string) string {
	if strings.Count(text, "```")%2 != 0 {
		text += "\n```"
	}
	return fixInlineCode(text)
}

func fixInlineCode(text string) string {
	var builder strings.Builder
	inCodeBlock := false
	inlineOpen := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if i+2 < len(runes) && string(runes[i:i+3]) == "```" {
			if inlineOpen {
				builder.WriteRune('`')
				inlineOpen = false
			}
			inCodeBlock = !inCodeBlock
			builder.WriteString("```")
			i += 2
			continue
		}

		if !inCodeBlock && runes[i] == '`' {
			inlineOpen = !inlineOpen
		}

		builder.WriteRune(runes[i])
	}

	if inlineOpen {
		builder.WriteRune('`')
	}

	return builder.String()
}

var (
	md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	extraBreaks = regexp.MustCompile(`\n{3,}`)
)

// EscapeHTML escapes text for Telegram's HTML parse mode.
func EscapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// ToHTML renders model markdown as the HTML subset Telegram accepts. Headings
// become bold lines, list items get bullets or numbers, and raw HTML is dropped.
func ToHTML(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}

	doc, err := goquery.NewDocumentFromReader(&buf)
	if err != nil {
		return "", err
	}

	var out strings.Builder
	renderChildren(&out, doc.Find("body"), 0)

	text := extraBreaks.ReplaceAllString(out.String(), "\n\n")
	return strings.TrimSpace(text), nil
}

func renderChildren(out *strings.Builder, sel *goquery.Selection, depth int) {
	sel.Contents().Each(func(_ int, s *goquery.Selection) {
		renderNode(out, s, depth)
	})
}

func renderNode(out *strings.Builder, s *goquery.Selection, depth int) {
	switch name := goquery.NodeName(s); name {
	case "#text":
		text := s.Text()
		if strings.TrimSpace(text) == "" && isBlockContainer(s.Parent()) {
			return
		}
		out.WriteString(EscapeHTML(text))
	case "#comment":
	case "strong", "b":
		wrap(out, s, "b", depth)
	case "em", "i":
		wrap(out, s, "i", depth)
	case "del", "s":
		wrap(out, s, "s", depth)
	case "code":
		out.WriteString("<code>")
		out.WriteString(EscapeHTML(s.Text()))
		out.WriteString("</code>")
	case "pre":
		code := s.Find("code").First()
		lang := ""
		if class, ok := code.Attr("class"); ok {
			lang = strings.TrimPrefix(class, "language-")
		}
		if lang != "" {
			out.WriteString(`<pre><code class="language-` + attrEscaper.Replace(lang) + `">`)
			out.WriteString(EscapeHTML(strings.TrimRight(s.Text(), "\n")))
			out.WriteString("</code></pre>\n\n")
		} else {
			out.WriteString("<pre>")
			out.WriteString(EscapeHTML(strings.TrimRight(s.Text(), "\n")))
			out.WriteString("</pre>\n\n")
		}
	case "a":
		href := s.AttrOr("href", "")
		if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
			out.WriteString(`<a href="` + attrEscaper.Replace(href) + `">`)
			renderChildren(out, s, depth)
			out.WriteString("</a>")
		} else {
			renderChildren(out, s, depth)
		}
	case "h1", "h2", "h3", "h4", "h5", "h6":
		out.WriteString("<b>")
		renderChildren(out, s, depth)
		out.WriteString("</b>\n\n")
	case "p":
		renderChildren(out, s, depth)
		out.WriteString("\n\n")
	case "br":
		out.WriteString("\n")
	case "hr":
		out.WriteString("──────────\n\n")
	case "blockquote":
		var inner strings.Builder
		renderChildren(&inner, s, depth)
		out.WriteString("<blockquote>")
		out.WriteString(strings.TrimSpace(inner.String()))
		out.WriteString("</blockquote>\n\n")
	case "ul", "ol":
		renderList(out, s, name == "ol", depth)
		if depth == 0 {
			out.WriteString("\n")
		}
	case "img":
		out.WriteString(EscapeHTML(s.AttrOr("alt", "")))
	default:
		renderChildren(out, s, depth)
	}
}

func renderList(out *strings.Builder, list *goquery.Selection, ordered bool, depth int) {
	n := 1
	if start, err := strconv.Atoi(list.AttrOr("start", "1")); err == nil {
		n = start
	}
	indent := strings.Repeat("  ", depth)

	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		var item strings.Builder
		renderChildren(&item, li, depth+1)

		marker := "• "
		if ordered {
			marker = strconv.Itoa(n) + ". "
			n++
		}
		out.WriteString(indent + marker)
		out.WriteString(strings.Trim(item.String(), "\n"))
		out.WriteString("\n")
	})
}

func wrap(out *strings.Builder, s *goquery.Selection, tag string, depth int) {
	out.WriteString("<" + tag + ">")
	renderChildren(out, s, depth)
	out.WriteString("</" + tag + ">")
}

func isBlockContainer(s *goquery.Selection) bool {
	switch goquery.NodeName(s) {
	case "body", "ul", "ol", "li", "blockquote":
		return true
	}
	return false
}
