// Package language normalizes language identifiers between ISO 639 code
// forms and full word forms, so configuration may say "English" while the
// speech-to-text engine receives "en".
package language
