// Package model defines the data types shared across the conversion
// pipeline: page geometry, positioned characters produced by the span
// decoder, and the word/line/block structure built by layout analysis.
//
// All geometry uses top-origin page coordinates: X grows to the right and
// Y grows downward, matching the CSS coordinate system of the renderer's
// markup after the bottom-anchored positions have been converted. A smaller
// Y is therefore higher on the page.
package model
