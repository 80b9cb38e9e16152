// Package layout reconstructs document structure from positioned characters.
//
// Detection runs in stages: characters group into lines and words, lines
// group into blocks, blocks get ordered for reading (columns left to right,
// top to bottom within a column), headings are ranked by font size against
// the body text, and repeated page furniture is dropped. Each stage is a
// detector with its own configuration, so thresholds can be tuned per
// document without touching the others.
//
// All coordinates are top-origin: smaller Y is higher on the page.
package layout
