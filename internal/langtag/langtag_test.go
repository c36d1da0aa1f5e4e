package langtag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	for _, tag := range []string{
		"en",
		"en-US",
		"fr-CA",
		"zh-Hant",
		"zh-Hans-CN",
		"sl-rozaj",
		"de-CH-1901",
		"hy-Latn-IT-arevela",
		"en-US-x-twain",
		"x-private",
		"i-klingon",
		"zh-min-nan",
	} {
		assert.True(t, Valid(tag), "tag %q", tag)
	}
}

func TestInvalid(t *testing.T) {
	for _, tag := range []string{
		"",
		"In-valiD-Code",
		"a",
		"en--US",
		"en-",
		"123",
		"toolongofalanguagetag",
		"en US",
	} {
		assert.False(t, Valid(tag), "tag %q", tag)
	}
}
