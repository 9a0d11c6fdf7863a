package style

import (
	"regexp"
	"slices"
	"strings"

	"github.com/Gouterman/stencil/data"
)

// /** @prop --name: documentation */
var propDocRe = regexp.MustCompile(`(?s)/\*\*[\s*]*@prop\s+(--[\w-]+)\s*:\s*(.*?)\s*\*/`)

// ParseStyleDocs returns every documented custom property of a stylesheet
// in source order.
func ParseStyleDocs(code string) []data.StyleDoc {
	var docs []data.StyleDoc
	for _, m := range propDocRe.FindAllStringSubmatch(code, -1) {
		docs = append(docs, data.StyleDoc{
			Name:       m[1],
			Docs:       strings.Join(strings.Fields(strings.ReplaceAll(m[2], "*", " ")), " "),
			Annotation: "prop",
		})
	}

	return docs
}

// AddStyleDocs appends docs to target, skipping names it already holds.
func AddStyleDocs(target *[]data.StyleDoc, docs ...data.StyleDoc) {
	for _, doc := range docs {
		if !slices.ContainsFunc(*target, func(existing data.StyleDoc) bool { return existing.Name == doc.Name }) {
			*target = append(*target, doc)
		}
	}
}

func (i *inliner) collectDocs(code string) {
	if i.in.StyleDocs == nil {
		return
	}

	AddStyleDocs(i.in.StyleDocs, ParseStyleDocs(code)...)
}
