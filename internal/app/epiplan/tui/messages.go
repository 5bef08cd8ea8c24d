package tui

import "epiplan/internal/app/epiplan"

// autosaveIdle is sent when the form was not edited for the autosave delay
type autosaveIdle struct{}

// toastExpired hides toast with the given sequence
type toastExpired struct {
	seq int
}

// pdfDone is sent when background pdf rendering finishes
type pdfDone struct {
	job  *epiplan.PDFJob
	path string
	err  error
}
