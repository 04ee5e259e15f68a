// Package render turns a laid-out document into a static HTML page and its
// stylesheet.
//
// # Templates
//
// A [Template] is a set of logic-free fragments: page, section, entry, tick
// and stylesheet. Fragments use {{ name }} placeholders, substituted strictly
// by [Substitute]: a placeholder without a value is an error, never an empty
// string. A placeholder alone on its line is replaced by a block indented to
// that line.
//
// The defaults are embedded in the binary ([DefaultTemplate]). [LoadDir]
// overrides any of page.html, section.html, entry.html, tick.html and
// style.css from a directory.
//
// # Output
//
// [Render] produces an [Artifact] with the page markup and stylesheet;
// [RenderJSON] exports the same document as JSON. Both are deterministic:
// identical input yields byte-identical output.
//
//	doc := render.Document{Title: "Lengths", CSSHref: "style.css", Sections: sections}
//	art, err := render.Render(doc, render.DefaultTemplate())
package render
