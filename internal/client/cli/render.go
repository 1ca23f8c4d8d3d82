package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/kycreview/internal/client/models"
)

func opt(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

func renderQueue(w io.Writer, recs []models.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No pending KYC records.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tCOUNTRY\tSUBMITTED")
	for _, r := range recs {
		submitted := "-"
		if r.SubmittedAt != nil {
			submitted = r.SubmittedAt.Local().Format(time.DateTime)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Email, opt(r.FullName), opt(r.Country), submitted)
	}
	_ = tw.Flush()
}

func renderDetails(w io.Writer, r models.Record) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row := func(k, v string) { fmt.Fprintf(tw, "%s:\t%s\n", k, v) }

	row("ID", fmt.Sprint(r.ID))
	row("User ID", fmt.Sprint(r.UserID))
	row("Email", r.Email)
	row("Full name", opt(r.FullName))
	row("Phone", opt(r.Phone))
	row("Date of birth", opt(r.DateOfBirth))
	row("ID type", opt(r.IDType))
	row("ID number", opt(r.IDNumber))

	addr := []string{opt(r.Address), opt(r.City), opt(r.State), opt(r.PostalCode), opt(r.Country)}
	row("Address", strings.Join(addr, ", "))

	row("ID front", opt(r.IDFrontURL))
	row("Selfie", opt(r.SelfieURL))
	if r.SubmittedAt != nil {
		row("Submitted", r.SubmittedAt.Local().Format(time.DateTime))
	}
	row("Status", string(r.Status))
	_ = tw.Flush()
}

func formatNotification(n models.Notification) string {
	return fmt.Sprintf("[%s #%d] %s", n.Kind, n.ID, n.Message)
}
