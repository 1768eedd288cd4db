package render

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/foomo/studio-gallery/service/vo"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Listing renders a listing as markdown: a heading, a summary line and one
// image per list item.
func Listing(title string, listing *vo.Listing) (vo.Markdown, error) {
	if listing == nil {
		return "", fmt.Errorf("failed to render %q: nil listing", title)
	}

	doc := element(atom.Article)
	doc.AppendChild(withText(element(atom.H1), title))
	doc.AppendChild(withText(element(atom.P), summary(listing)))

	if len(listing.Images) > 0 {
		list := element(atom.Ul)
		for _, img := range listing.Images {
			item := element(atom.Li)
			item.AppendChild(element(atom.Img,
				html.Attribute{Key: "src", Val: img.URL},
				html.Attribute{Key: "alt", Val: img.AltText},
			))
			list.AppendChild(item)
		}
		doc.AppendChild(list)
	}

	markdownBytes, err := htmltomarkdown.ConvertNode(doc)
	if err != nil {
		return "", fmt.Errorf("failed to convert listing to markdown: %w", err)
	}
	return vo.Markdown(strings.TrimSpace(string(markdownBytes))), nil
}

func summary(listing *vo.Listing) string {
	if !listing.Success {
		if listing.Error != "" {
			return listing.Error
		}
		return "No images found"
	}
	if p := listing.Pagination; p != nil {
		s := fmt.Sprintf("Showing %d of %d images, page %d", len(listing.Images), p.Total, p.Page)
		if p.HasMore {
			s += ", more available"
		}
		return s + "."
	}
	return fmt.Sprintf("Showing %d images.", len(listing.Images))
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func withText(n *html.Node, text string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
