package ingest

import "time"

const (
	StatusUploaded   = "UPLOADED"
	StatusProcessing = "PROCESSING"
	StatusParsed     = "PARSED"
	StatusFailed     = "FAILED"
)

// ParsedItem is one line extracted from an uploaded menu.
type ParsedItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price,omitempty"`
}

// Ingestion tracks one uploaded menu file through the worker.
type Ingestion struct {
	ID              int          `json:"id"`
	RestaurantID    string       `json:"restaurant_id"`
	FileURL         string       `json:"file_url"`
	FileName        string       `json:"file_name"`
	FileType        string       `json:"file_type"`
	TargetLanguage  string       `json:"target_language,omitempty"`
	Status          string       `json:"status"`
	RawText         string       `json:"raw_text,omitempty"`
	Items           []ParsedItem `json:"items,omitempty"`
	TranslatedItems []ParsedItem `json:"translated_items,omitempty"`
	QRCode          string       `json:"qr_code,omitempty"`
	ErrorReason     string       `json:"error_reason,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}
