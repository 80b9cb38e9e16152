// Package markup parses paginated HTML produced by a PDF renderer into
// positioned characters.
//
// The input encodes geometry through CSS classes: a text element carries
// classes like "x1c", "y8", "h3", "fs2" and "ff1", and the document's
// stylesheet maps each class to a pixel value or a font family. Embedded
// fonts arrive as base64 data URIs in @font-face rules. The parser walks the
// page structure, the decoder turns each glyph into a positioned character
// using the font tables, and everything downstream works on the top-origin
// coordinates the decoder emits.
package markup
