// Package htmltable finds and flattens the IO tables on wiki device pages.
//
// Location is purely textual: an anchor id is matched with a regular
// expression and the first <table ...>...</table> after it is sliced out
// verbatim. Parsing then walks that slice with the x/net/html tokenizer and
// yields rows of plain-text cells. Nothing here understands the wider page
// structure, so a miss is reported as ok=false or an empty result and the
// caller decides how to degrade.
package htmltable
