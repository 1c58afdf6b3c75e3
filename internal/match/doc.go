// SPDX-License-Identifier: MPL-2.0

// Package match scores applications against a search query and ranks them.
//
// A record's score is the best of three weighted channels: its name (1.0),
// the base name of its program (0.5) and its description (0.25). Each channel
// is a Jaro-Winkler similarity on lower-cased text, so every score lies in
// [0, 1]. Records scoring at or below Threshold are dropped.
package match
