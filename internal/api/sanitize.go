package api

import (
	"fmt"
	"regexp"
)

// fieldRepair blanks the value of one known-unreliable JSON string field
// before decoding. It is deliberately narrow: the repair targets exactly
// one named field and is only wired to the payload shape known to carry
// bad data, so it never runs against healthy responses.
type fieldRepair struct {
	field       string
	placeholder []byte
	re          *regexp.Regexp
}

// newFieldRepair builds a repair replacing field's string value with
// placeholder.
func newFieldRepair(field, placeholder string) *fieldRepair {
	quoted := regexp.QuoteMeta(field)
	return &fieldRepair{
		field:       field,
		placeholder: []byte(fmt.Sprintf(`"%s":"%s"`, field, placeholder)),
		re:          regexp.MustCompile(fmt.Sprintf(`"%s":"([^"]+?)"`, quoted)),
	}
}

// apply replaces every occurrence of the field's value in body.
func (r *fieldRepair) apply(body []byte) []byte {
	return r.re.ReplaceAll(body, r.placeholder)
}

// ownerRepair blanks seller names in the bulk auction listings payload.
// Blizzard routinely emits invalid encoded text in the "owner" field,
// which would otherwise fail the whole decode.
var ownerRepair = newFieldRepair("owner", "_")
