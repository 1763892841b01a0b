// Package rename holds the pure decision core: filename classification,
// date normalization, and canonical name construction. Nothing in this
// package touches the filesystem or the network.
package rename

import "regexp"

// canonicalName matches the full target form: six digits, hyphen, lowercase
// kebab-case stem, ".pdf". Anchored on both ends so a prefix match can never
// classify a wrongly named file as done.
var canonicalName = regexp.MustCompile(`^\d{6}-[a-z0-9]+(-[a-z0-9]+)*\.pdf$`)

// IsCanonical reports whether filename already follows the
// YYMMDD-kebab-case.pdf form. The match is case-sensitive: an uppercase
// letter anywhere means the file still needs processing.
func IsCanonical(filename string) bool {
	return canonicalName.MatchString(filename)
}
