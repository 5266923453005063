package directory

import "strings"

// SplitDN derives a search filter and a search base from a DN by splitting
// it at the first comma: the left-most RDN becomes an equality filter and
// the remainder becomes the base. A DN without a comma yields an empty base,
// which the server resolves against the configured directory root.
//
// This is a structural reinterpretation of the DN, not a point lookup, so
// the DN must be syntactically well formed: a non-empty RDN of the form
// attr=value. Malformed DNs fail with ErrValidation.
func SplitDN(dn string) (filter string, base string, err error) {
	if dn == "" {
		return "", "", ErrValidation.Msg("empty DN")
	}

	rdn := dn
	if i := strings.Index(dn, ","); i >= 0 {
		rdn = dn[:i]
		base = dn[i+1:]
	}

	rdn = strings.TrimSpace(rdn)
	if rdn == "" {
		return "", "", ErrValidation.Msg("DN has an empty RDN component")
	}
	eq := strings.Index(rdn, "=")
	if eq <= 0 || eq == len(rdn)-1 {
		return "", "", ErrValidation.Msg("RDN is not an attribute=value pair: " + rdn)
	}

	return "(" + rdn + ")", base, nil
}
