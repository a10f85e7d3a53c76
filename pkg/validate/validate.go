package validate

import (
	"strings"

	"exchange-form/pkg/catalog"
)

// MinAddressLength is the shortest destination address accepted by the coarse check.
const MinAddressLength = 10

// DefaultTagRequired lists the destination symbols that need a tag or memo.
var DefaultTagRequired = []string{"XRP", "XLM", "BNB", "EOS", "ATOM", "TON"}

// Validator checks the destination address and tag fields.
type Validator struct {
	tagRequired map[string]struct{}
}

// New creates a validator. A nil symbol list falls back to DefaultTagRequired;
// an empty non-nil list means no currency requires a tag.
func New(tagRequired []string) *Validator {
	if tagRequired == nil {
		tagRequired = DefaultTagRequired
	}

	v := &Validator{tagRequired: make(map[string]struct{}, len(tagRequired))}
	for _, s := range tagRequired {
		v.tagRequired[strings.ToUpper(strings.TrimSpace(s))] = struct{}{}
	}
	return v
}

// ValidateAddress is a length sanity check, not format or checksum validation.
func (v *Validator) ValidateAddress(addr string) bool {
	return addr != "" && len(addr) >= MinAddressLength
}

// TagRequired reports whether sending to dest needs a destination tag or memo.
func (v *Validator) TagRequired(dest catalog.Currency) bool {
	_, ok := v.tagRequired[strings.ToUpper(dest.Symbol)]
	return ok
}

// ValidateTag accepts any tag when none is required.
func (v *Validator) ValidateTag(tag string, required bool) bool {
	if !required {
		return true
	}
	return tag != ""
}

// TagLabel returns the field label used for dest: XRP calls it a destination tag.
func TagLabel(dest catalog.Currency) string {
	if strings.EqualFold(dest.Symbol, "XRP") {
		return "Destination Tag"
	}
	return "Memo"
}
