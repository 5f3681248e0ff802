package el

import "github.com/facet-ui/facet/pkg/dom"

// Element constructors for the common HTML tags. Each is El with the tag
// baked in; see El for argument handling.

func Div(args ...any) *dom.Node      { return El("div", args...) }
func Span(args ...any) *dom.Node     { return El("span", args...) }
func P(args ...any) *dom.Node        { return El("p", args...) }
func H1(args ...any) *dom.Node       { return El("h1", args...) }
func H2(args ...any) *dom.Node       { return El("h2", args...) }
func H3(args ...any) *dom.Node       { return El("h3", args...) }
func H4(args ...any) *dom.Node       { return El("h4", args...) }
func Ul(args ...any) *dom.Node       { return El("ul", args...) }
func Ol(args ...any) *dom.Node       { return El("ol", args...) }
func Li(args ...any) *dom.Node       { return El("li", args...) }
func Button(args ...any) *dom.Node   { return El("button", args...) }
func Input(args ...any) *dom.Node    { return El("input", args...) }
func Textarea(args ...any) *dom.Node { return El("textarea", args...) }
func Form(args ...any) *dom.Node     { return El("form", args...) }
func Label(args ...any) *dom.Node    { return El("label", args...) }
func A(args ...any) *dom.Node        { return El("a", args...) }
func Img(args ...any) *dom.Node      { return El("img", args...) }
func Br(args ...any) *dom.Node       { return El("br", args...) }
func Hr(args ...any) *dom.Node       { return El("hr", args...) }
func Strong(args ...any) *dom.Node   { return El("strong", args...) }
func Em(args ...any) *dom.Node       { return El("em", args...) }
func Code(args ...any) *dom.Node     { return El("code", args...) }
func Pre(args ...any) *dom.Node      { return El("pre", args...) }
func Table(args ...any) *dom.Node    { return El("table", args...) }
func Thead(args ...any) *dom.Node    { return El("thead", args...) }
func Tbody(args ...any) *dom.Node    { return El("tbody", args...) }
func Tr(args ...any) *dom.Node       { return El("tr", args...) }
func Td(args ...any) *dom.Node       { return El("td", args...) }
func Th(args ...any) *dom.Node       { return El("th", args...) }
func Section(args ...any) *dom.Node  { return El("section", args...) }
func Header(args ...any) *dom.Node   { return El("header", args...) }
func Footer(args ...any) *dom.Node   { return El("footer", args...) }
func Main(args ...any) *dom.Node     { return El("main", args...) }
func Nav(args ...any) *dom.Node      { return El("nav", args...) }
func Article(args ...any) *dom.Node  { return El("article", args...) }
