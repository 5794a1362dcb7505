// Package report renders backend results for the terminal.
//
// Three formats are supported: text (the default, for people), JSON (for
// scripts) and Markdown (for pasting into tickets and chats). All of them
// implement Writer, so commands pick a format once with New and never branch
// on it again.
package report
