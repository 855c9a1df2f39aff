// Package iofields turns flattened wiki tables into device IO field lists.
//
// Column roles are recognised through HeaderRoles, the one synonym table for
// header text. Rows that cannot describe a field (blank names, enumeration
// rows such as "0 | Off", unknown types) are dropped silently; the wiki is
// community maintained and a sparse result is preferred over a failed import.
package iofields
