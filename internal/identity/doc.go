// Package identity recovers a device's item name and hash from page text.
//
// Wiki infoboxes render identity as label/value pairs ("Prefab Name X",
// "Prefab Hash 123") whose markup differs between templates, so matching is
// done on visible text rather than on tags. Every label occurrence is
// collected as a Candidate with its text offset and the winner is chosen by
// proximity (Nearest) or position (Last).
package identity
