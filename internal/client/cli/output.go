package cli

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/verischol/internal/api"
	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed, color.Bold).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

// colorStatus highlights a record or verification status.
func colorStatus(status string) string {
	switch status {
	case "verified", "success":
		return green(status)
	case "corrupted", "failure":
		return red(status)
	case "pending":
		return yellow(status)
	}
	return status
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(time.DateTime)
}

func printPrincipal(w io.Writer, p *api.Principal) {
	fmt.Fprintf(w, "ID:       %s\n", p.ID)
	fmt.Fprintf(w, "Username: %s\n", p.Username)
	fmt.Fprintf(w, "Email:    %s\n", p.Email)
	fmt.Fprintf(w, "Role:     %s\n", p.Role)
}

func printProject(w io.Writer, p *api.Project) {
	fmt.Fprintf(w, "ID:          %s\n", p.ID)
	fmt.Fprintf(w, "Name:        %s\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", p.Description)
	}
	fmt.Fprintf(w, "Created:     %s\n", formatTime(p.CreatedAt))
}

func printRecord(w io.Writer, r *api.Record) {
	fmt.Fprintf(w, "ID:          %s\n", r.ID)
	fmt.Fprintf(w, "Project:     %s\n", r.ProjectID)
	fmt.Fprintf(w, "Title:       %s\n", r.Title)
	if r.Description != "" {
		fmt.Fprintf(w, "Description: %s\n", r.Description)
	}
	fmt.Fprintf(w, "Producer:    %s\n", r.ProducerID)
	fmt.Fprintf(w, "Recipient:   %s\n", r.RecipientID)
	fmt.Fprintf(w, "Status:      %s\n", colorStatus(r.Status))
	fmt.Fprintf(w, "Digest:      %s\n", r.Digest)
	fmt.Fprintf(w, "Size:        %d bytes sealed\n", len(r.Ciphertext))
	if r.LastVerifiedAt != nil {
		fmt.Fprintf(w, "Verified:    %s by %s\n", formatTime(*r.LastVerifiedAt), r.LastVerifiedBy)
	}
	fmt.Fprintf(w, "Updated:     %s\n", formatTime(r.UpdatedAt))
}

func printVerdict(w io.Writer, v *api.Verdict) {
	fmt.Fprintf(w, "Record:  %s\n", v.RecordID)
	fmt.Fprintf(w, "Status:  %s\n", colorStatus(v.Status))
	fmt.Fprintf(w, "Stored:  %s\n", v.StoredDigest)
	if v.CurrentDigest != "" {
		fmt.Fprintf(w, "Current: %s\n", v.CurrentDigest)
	}
	if !v.Match {
		fmt.Fprintln(w, red("Integrity check failed: the record has been tampered with."))
	}
}

// printAuditEntries writes an audit table. The record column is only shown
// for project-wide listings.
func printAuditEntries(w io.Writer, entries []api.AuditEntry, withRecord bool) error {
	tw := newTable(w)
	if withRecord {
		fmt.Fprint(tw, "RECORD\t")
	}
	fmt.Fprintln(tw, "TIME\tACTION\tRESULT\tACTOR\tSTATUS")
	for _, e := range entries {
		status := e.VerificationStatus
		if status == "" {
			status = "-"
		}
		if withRecord {
			fmt.Fprintf(tw, "%s\t", e.RecordID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			formatTime(e.CreatedAt), e.Action, colorStatus(e.Result), e.ActorID, colorStatus(status))
	}
	return tw.Flush()
}

func printStats(w io.Writer, s *api.SystemStats) error {
	tw := newTable(w)
	fmt.Fprintf(tw, "Principals:\t%d\t(producers %d, verifiers %d, administrators %d)\n",
		s.Principals, s.Producers, s.Verifiers, s.Administrators)
	fmt.Fprintf(tw, "Projects:\t%d\n", s.Projects)
	fmt.Fprintf(tw, "Records:\t%d\t(%s %d, %s %d, %s %d)\n", s.Records,
		colorStatus("pending"), s.PendingRecords,
		colorStatus("verified"), s.VerifiedRecords,
		colorStatus("corrupted"), s.CorruptedRecords)
	fmt.Fprintf(tw, "Audit entries:\t%d\n", s.AuditEntries)
	return tw.Flush()
}
