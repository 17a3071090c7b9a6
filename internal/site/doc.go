// Package site renders a command tree into a static help site.
//
// A build walks the tree depth-first, writes one HTML page per node into a staging
// directory, emits the navigation data consumed by the browser side (tree-data.js) and
// promotes the staging directory over the previous output. The package metadata cache
// next to the pages is written last, so a failed run always rebuilds on the next attempt.
package site
