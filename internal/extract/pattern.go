package extract

import "regexp"

// Markup and stylesheet references are found by pattern scans over the raw
// text, so malformed documents still yield whatever references they contain.
// None of the patterns cross a line break.
var (
	reLinkHref  = regexp.MustCompile(`<link.*?href=["'](.*?)["']`)
	reScriptSrc = regexp.MustCompile(`<script.*?src=["'](.*?)["']`)

	// Alternatives are tried left to right: quoted url() forms before the
	// unquoted one, so url("a.css") yields a.css rather than "a.css".
	reCSSImport = regexp.MustCompile(`@import\s+(?:url\("(.*?)"\)|url\('(.*?)'\)|url\((.*?)\)|"(.*?)"|'(.*?)')`)
)

// Markup returns the href of every <link> tag followed by the src of every
// <script> tag.
func Markup(_ string, source string) []string {
	var specs []string
	for _, m := range reLinkHref.FindAllStringSubmatch(source, -1) {
		specs = append(specs, m[1])
	}
	for _, m := range reScriptSrc.FindAllStringSubmatch(source, -1) {
		specs = append(specs, m[1])
	}
	return specs
}

// Stylesheet returns the target of every @import rule, in either the url()
// or the bare string form.
func Stylesheet(_ string, source string) []string {
	var specs []string
	for _, m := range reCSSImport.FindAllStringSubmatch(source, -1) {
		specs = append(specs, firstNonEmpty(m[1:]...))
	}
	return specs
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
