// Package langtag validates BCP 47 language tags against the published
// regular grammar, including the grandfathered and private-use alternates.
package langtag

import "regexp"

var (
	irregular = `(?:en-GB-oed|i-ami|i-bnn|i-default|i-enochian|i-hak|i-klingon|i-lux|i-mingo|i-navajo|i-pwn|i-tao|i-tay|i-tsu|sgn-BE-FR|sgn-BE-NL|sgn-CH-DE)`
	regular   = `(?:art-lojban|cel-gaulish|no-bok|no-nyn|zh-guoyu|zh-hakka|zh-min|zh-min-nan|zh-xiang)`

	grandfathered = `(?:` + irregular + `|` + regular + `)`
	privateUse    = `(?:x(?:-[A-Za-z0-9]{1,8})+)`
	singleton     = `[0-9A-WY-Za-wy-z]`
	extension     = `(?:` + singleton + `(?:-[A-Za-z0-9]{2,8})+)`
	variant       = `(?:[A-Za-z0-9]{5,8}|[0-9][A-Za-z0-9]{3})`
	region        = `(?:[A-Za-z]{2}|[0-9]{3})`
	script        = `(?:[A-Za-z]{4})`
	extlang       = `(?:[A-Za-z]{3}(?:-[A-Za-z]{3}){0,2})`
	language      = `(?:[A-Za-z]{2,3}(?:-` + extlang + `)?|[A-Za-z]{4}|[A-Za-z]{5,8})`
	langtag       = language + `(?:-` + script + `)?(?:-` + region + `)?(?:-` + variant + `)*(?:-` + extension + `)*(?:-` + privateUse + `)?`

	tagRe = regexp.MustCompile(`^(?:` + grandfathered + `|` + langtag + `|` + privateUse + `)$`)
)

// Valid reports whether tag is a well-formed BCP 47 language tag.
func Valid(tag string) bool {
	return tagRe.MatchString(tag)
}
