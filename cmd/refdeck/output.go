package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/refdeck/refdeck/internal/reference"
)

// Constants for output formatting.
const (
	DefaultSearchLimit = 50 // Default limit for search/list commands

	ListTitleMaxLen   = 50 // Used in list command output
	DetailTitleMaxLen = 70 // Used in get command detail view

	TextWrapWidth       = 60 // Standard text wrap width
	DetailTextWrapWidth = 68 // Wider wrap for detail views
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	ID     string `json:"id,omitempty"`
	Path   string `json:"path,omitempty"`
	Count  int    `json:"count,omitempty"`
}

// ErrorResponse is a JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// truncateString truncates a string to maxLen, adding "..." if truncated.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

// wrapText wraps text to the specified width with indentation on subsequent lines.
func wrapText(text string, width int, indent string) string {
	if len(text) <= width {
		return text
	}

	var lines []string
	words := strings.Fields(text)
	var currentLine strings.Builder

	for _, word := range words {
		if currentLine.Len() == 0 {
			currentLine.WriteString(word)
		} else if currentLine.Len()+1+len(word) <= width {
			currentLine.WriteString(" ")
			currentLine.WriteString(word)
		} else {
			lines = append(lines, currentLine.String())
			currentLine.Reset()
			currentLine.WriteString(word)
		}
	}
	if currentLine.Len() > 0 {
		lines = append(lines, currentLine.String())
	}

	return strings.Join(lines, "\n"+indent)
}

// formatAuthorsShort formats authors with "et al." for more than maxCount.
func formatAuthorsShort(authors []string, maxCount int) string {
	if len(authors) == 0 {
		return ""
	}

	var names []string
	for i, a := range authors {
		if i >= maxCount {
			names = append(names, "et al.")
			break
		}
		names = append(names, reference.FamilyName(a))
	}
	return strings.Join(names, ", ")
}

// printRefLine prints a one-line summary of a reference.
func printRefLine(ref reference.Reference) {
	fmt.Printf("  %s: %s\n", ref.ID, truncateString(ref.Title, ListTitleMaxLen))
	fmt.Printf("    %s (%d)", formatAuthorsShort(ref.Authors, 3), ref.Year)
	if ref.JournalRanking != "" {
		fmt.Printf("  [%s]", ref.JournalRanking)
	}
	if ref.Favorite {
		fmt.Printf("  *")
	}
	fmt.Println()
}

// printRefDetail prints a full reference in human-readable format.
func printRefDetail(ref reference.Reference) {
	fmt.Println(ref.ID)
	fmt.Println(strings.Repeat("=", DetailTitleMaxLen))
	fmt.Println()

	fmt.Printf("Title:    %s\n", wrapText(ref.Title, TextWrapWidth, "          "))
	fmt.Println()

	if len(ref.Authors) > 0 {
		fmt.Printf("Authors:  %s\n", wrapText(strings.Join(ref.Authors, "; "), TextWrapWidth, "          "))
		fmt.Println()
	}

	if ref.Journal != "" {
		fmt.Printf("Journal:  %s", ref.Journal)
		if ref.JournalRanking != "" {
			fmt.Printf("  [%s]", ref.JournalRanking)
		}
		fmt.Println()
	}

	fmt.Printf("Year:     %d\n", ref.Year)
	if ref.Type != "" {
		fmt.Printf("Type:     %s\n", ref.Type)
	}
	if ref.DOI != "" {
		fmt.Printf("DOI:      %s\n", ref.DOI)
	}
	if ref.CitationCount > 0 {
		fmt.Printf("Cited:    %d\n", ref.CitationCount)
	}
	fmt.Printf("Source:   %s\n", ref.Source)

	if len(ref.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", strings.Join(ref.Tags, ", "))
	}
	if ref.Favorite {
		fmt.Println("Favorite: yes")
	}

	if ref.Abstract != "" {
		fmt.Println()
		fmt.Println("Abstract:")
		fmt.Printf("  %s\n", wrapText(ref.Abstract, DetailTextWrapWidth, "  "))
	}

	if ref.Notes != "" {
		fmt.Println()
		fmt.Println("Notes:")
		fmt.Printf("  %s\n", wrapText(ref.Notes, DetailTextWrapWidth, "  "))
	}

	if ref.PDFPath != "" {
		fmt.Println()
		fmt.Printf("PDF:      %s\n", ref.PDFPath)
	}
}
