// Package html provides a Normaliser implementation for HTML documents.
// It extracts readable text, keeping block elements as paragraphs so that
// paragraph expansion still works on the imported text.
package html
